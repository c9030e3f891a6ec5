package transcript

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

const playerResponseMarker = "ytInitialPlayerResponse"

// captionTrack is one entry of captions.playerCaptionsTracklistRenderer.captionTracks.
type captionTrack struct {
	BaseURL      string
	LanguageCode string
	Kind         string
}

// extractPlayerResponse finds the inline script assigning ytInitialPlayerResponse
// and returns the JSON object it holds.
func extractPlayerResponse(page []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var raw json.RawMessage
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		start := strings.IndexByte(text[idx:], '{')
		if start < 0 {
			return true
		}
		// The assignment is followed by more statements; decode exactly one value.
		dec := json.NewDecoder(strings.NewReader(text[idx+start:]))
		if err := dec.Decode(&raw); err != nil {
			raw = nil
			return true
		}
		return false
	})

	if len(raw) == 0 {
		return nil, ErrPlayerResponseNotFound
	}
	return raw, nil
}

// parseCaptionTracks reads playability and caption tracks from the player response.
func parseCaptionTracks(playerResponse []byte) ([]captionTrack, error) {
	status := gjson.GetBytes(playerResponse, "playabilityStatus.status")
	if status.Exists() && status.String() != "OK" {
		reason := gjson.GetBytes(playerResponse, "playabilityStatus.reason").String()
		if reason == "" {
			reason = status.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, reason)
	}

	var tracks []captionTrack
	gjson.GetBytes(playerResponse, "captions.playerCaptionsTracklistRenderer.captionTracks").
		ForEach(func(_, value gjson.Result) bool {
			baseURL := value.Get("baseUrl").String()
			if baseURL == "" {
				return true
			}
			tracks = append(tracks, captionTrack{
				BaseURL:      baseURL,
				LanguageCode: value.Get("languageCode").String(),
				Kind:         value.Get("kind").String(),
			})
			return true
		})

	if len(tracks) == 0 {
		return nil, ErrNoCaptions
	}
	return tracks, nil
}

// selectTrack prefers the requested language, then the fallback language, then the
// first track. Within a language, uploaded captions win over automatic ones.
func selectTrack(tracks []captionTrack, preferred, fallback string) captionTrack {
	for _, lang := range []string{preferred, fallback} {
		if lang == "" {
			continue
		}
		var auto *captionTrack
		for i := range tracks {
			if !languageMatches(tracks[i].LanguageCode, lang) {
				continue
			}
			if tracks[i].Kind != "asr" {
				return tracks[i]
			}
			if auto == nil {
				auto = &tracks[i]
			}
		}
		if auto != nil {
			return *auto
		}
	}
	return tracks[0]
}

// languageMatches compares base language subtags, so "en-GB" matches "en".
func languageMatches(code, lang string) bool {
	base, _, _ := strings.Cut(strings.ToLower(code), "-")
	return base == strings.ToLower(lang)
}

// timedText covers both the legacy <transcript><text> layout and the
// format 3 <timedtext><body><p> layout.
type timedText struct {
	Texts      []string `xml:"text"`
	Paragraphs []struct {
		Text     string   `xml:",chardata"`
		Segments []string `xml:"s"`
	} `xml:"body>p"`
}

// decodeTimedText converts a caption document into a single line of plain text.
func decodeTimedText(doc []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(doc, &tt); err != nil {
		return "", fmt.Errorf("decode timed text: %w", err)
	}

	var parts []string
	add := func(s string) {
		// Caption text is entity-encoded a second time inside the XML.
		s = strings.Join(strings.Fields(html.UnescapeString(s)), " ")
		if s != "" {
			parts = append(parts, s)
		}
	}

	for _, t := range tt.Texts {
		add(t)
	}
	for _, p := range tt.Paragraphs {
		if len(p.Segments) > 0 {
			add(strings.Join(p.Segments, ""))
			continue
		}
		add(p.Text)
	}

	if len(parts) == 0 {
		return "", ErrEmptyTranscript
	}
	return strings.Join(parts, " "), nil
}
