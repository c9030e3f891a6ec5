package transcript

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerResponseJSON = `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
	`{"baseUrl":"/api/timedtext?lang=de","languageCode":"de","kind":""},` +
	`{"baseUrl":"/api/timedtext?lang=en&kind=asr","languageCode":"en","kind":"asr"},` +
	`{"baseUrl":"/api/timedtext?lang=en-GB","languageCode":"en-GB"},` +
	`{"baseUrl":"/api/timedtext?lang=fr","languageCode":"fr","kind":"asr"}]}}}`

func watchPage(script string) []byte {
	return []byte(`<!DOCTYPE html><html><head><script>var ytcfg = {"a":1};</script></head><body>` +
		`<div id="player"></div><script nonce="x">` + script + `</script></body></html>`)
}

func TestExtractPlayerResponse(t *testing.T) {
	page := watchPage(`var ytInitialPlayerResponse = ` + playerResponseJSON + `;var meta = document.createElement('meta');`)

	raw, err := extractPlayerResponse(page)
	require.NoError(t, err)
	assert.JSONEq(t, playerResponseJSON, string(raw))
}

func TestExtractPlayerResponse_BracesInStrings(t *testing.T) {
	body := `{"videoDetails":{"title":"a } tricky { title"},"playabilityStatus":{"status":"OK"}}`
	raw, err := extractPlayerResponse(watchPage(`window["ytInitialPlayerResponse"] = ` + body + `;`))
	require.NoError(t, err)
	assert.JSONEq(t, body, string(raw))
}

func TestExtractPlayerResponse_Missing(t *testing.T) {
	_, err := extractPlayerResponse(watchPage(`var somethingElse = {};`))
	assert.ErrorIs(t, err, ErrPlayerResponseNotFound)

	_, err = extractPlayerResponse(watchPage(`var ytInitialPlayerResponse = {broken`))
	assert.ErrorIs(t, err, ErrPlayerResponseNotFound)
}

func TestParseCaptionTracks(t *testing.T) {
	tracks, err := parseCaptionTracks([]byte(playerResponseJSON))
	require.NoError(t, err)

	want := []captionTrack{
		{BaseURL: "/api/timedtext?lang=de", LanguageCode: "de"},
		{BaseURL: "/api/timedtext?lang=en&kind=asr", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "/api/timedtext?lang=en-GB", LanguageCode: "en-GB"},
		{BaseURL: "/api/timedtext?lang=fr", LanguageCode: "fr", Kind: "asr"},
	}
	if diff := cmp.Diff(want, tracks); diff != "" {
		t.Errorf("parseCaptionTracks() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCaptionTracks_Errors(t *testing.T) {
	_, err := parseCaptionTracks([]byte(`{"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}}`))
	assert.ErrorIs(t, err, ErrVideoUnavailable)
	assert.Contains(t, err.Error(), "Video unavailable")

	_, err = parseCaptionTracks([]byte(`{"playabilityStatus":{"status":"LOGIN_REQUIRED"}}`))
	assert.ErrorIs(t, err, ErrVideoUnavailable)

	_, err = parseCaptionTracks([]byte(`{"playabilityStatus":{"status":"OK"}}`))
	assert.ErrorIs(t, err, ErrNoCaptions)

	_, err = parseCaptionTracks([]byte(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"languageCode":"en"}]}}}`))
	assert.ErrorIs(t, err, ErrNoCaptions)
}

func TestSelectTrack(t *testing.T) {
	tracks, err := parseCaptionTracks([]byte(playerResponseJSON))
	require.NoError(t, err)

	tests := []struct {
		name      string
		preferred string
		fallback  string
		want      string
	}{
		{name: "requested language", preferred: "de", fallback: "en", want: "de"},
		{name: "uploaded regional beats automatic", preferred: "en", fallback: "en", want: "en-GB"},
		{name: "automatic when only option", preferred: "fr", fallback: "en", want: "fr"},
		{name: "fallback language", preferred: "zh", fallback: "en", want: "en-GB"},
		{name: "no preference uses fallback", preferred: "", fallback: "fr", want: "fr"},
		{name: "first track", preferred: "zh", fallback: "es", want: "de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectTrack(tracks, tt.preferred, tt.fallback)
			assert.Equal(t, tt.want, got.LanguageCode)
		})
	}
}

func TestDecodeTimedText(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "legacy format",
			doc: `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
				`<text start="0.5" dur="2.1">Welcome to the show.</text>` +
				`<text start="2.6" dur="3">Today we talk about &amp;#39;cats&amp;#39;
and dogs.</text>` +
				`<text start="6" dur="1">   </text></transcript>`,
			want: "Welcome to the show. Today we talk about 'cats' and dogs.",
		},
		{
			name: "format 3 with segments",
			doc: `<timedtext format="3"><body>` +
				`<p t="0" d="1000"><s>Hello</s><s t="300"> there</s></p>` +
				`<p t="1000" d="1000">Plain paragraph &amp;amp; more</p>` +
				`</body></timedtext>`,
			want: "Hello there Plain paragraph & more",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeTimedText([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeTimedText_Errors(t *testing.T) {
	_, err := decodeTimedText([]byte(`<transcript></transcript>`))
	assert.ErrorIs(t, err, ErrEmptyTranscript)

	_, err = decodeTimedText([]byte(`<transcript><text>unterminated`))
	assert.Error(t, err)
}
