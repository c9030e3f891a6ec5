// Package summary provides HTTP handlers for the summarize, validate-video and
// summary history endpoints.
package summary

import (
	"time"

	"briefly/internal/domain/entity"
)

// SummarizeRequest is the JSON body of POST /api/summarize.
type SummarizeRequest struct {
	InputType      string `json:"inputType" example:"raw_text" enums:"video_reference,raw_text"`
	VideoReference string `json:"videoReference,omitempty" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
	RawText        string `json:"rawText,omitempty" example:"Cats are small domesticated mammals. Dogs are loyal companions."`
	Length         string `json:"length" example:"medium" enums:"short,medium,long"`
	Language       string `json:"language" example:"en" enums:"en,es,fr,de,zh"`
}

func (r SummarizeRequest) toEntity() entity.SummaryRequest {
	return entity.SummaryRequest{
		InputType:      entity.InputType(r.InputType),
		VideoReference: r.VideoReference,
		RawText:        r.RawText,
		Length:         entity.SummaryLength(r.Length),
		Language:       entity.Language(r.Language),
	}
}

// SummarizeResponse is the JSON body of a successful summarize call.
type SummarizeResponse struct {
	Source      string    `json:"source" example:"Text input"`
	Summary     string    `json:"summary" example:"Cats are small domesticated mammals."`
	KeyPoints   []string  `json:"keyPoints"`
	GeneratedAt time.Time `json:"generatedAt" example:"2025-10-26T12:00:00Z"`
}

func toSummarizeResponse(r *entity.SummaryResponse) SummarizeResponse {
	return SummarizeResponse{
		Source:      r.Source,
		Summary:     r.Summary,
		KeyPoints:   r.KeyPoints,
		GeneratedAt: r.GeneratedAt.UTC(),
	}
}

// ValidateRequest is the JSON body of POST /api/validate-video.
type ValidateRequest struct {
	VideoReference string `json:"videoReference" example:"https://youtu.be/dQw4w9WgXcQ"`
}

// ValidateResponse reports whether a video reference can be summarized.
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RecordDTO is one stored summary in GET /api/summaries.
type RecordDTO struct {
	ID        string    `json:"id" example:"7f9c24e8-3b1a-4d5e-9c2f-1a2b3c4d5e6f"`
	InputType string    `json:"inputType" example:"video_reference"`
	Source    string    `json:"source" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"keyPoints"`
	Length    string    `json:"length" example:"short"`
	Language  string    `json:"language" example:"en"`
	CreatedAt time.Time `json:"createdAt" example:"2025-10-26T12:00:00Z"`
}

// ListResponse is the JSON body of GET /api/summaries.
type ListResponse struct {
	Summaries []RecordDTO `json:"summaries"`
	Count     int         `json:"count"`
}

func toRecordDTO(r *entity.SummaryRecord) RecordDTO {
	return RecordDTO{
		ID:        r.ID.String(),
		InputType: string(r.InputType),
		Source:    r.Source,
		Summary:   r.Summary,
		KeyPoints: r.KeyPoints,
		Length:    string(r.Length),
		Language:  string(r.Language),
		CreatedAt: r.CreatedAt.UTC(),
	}
}
