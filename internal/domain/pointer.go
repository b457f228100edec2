package domain

import "strings"

// Pointer is a pre-existing singleton document tracking the latest video
// of a feed.
type Pointer struct {
	ID  string
	URL string
}

type PointerRecord struct {
	Title          string
	TitleLowercase string
	URL            string
	ImageURL       string
}

func NewPointerRecord(videoID, title, imageURL string) PointerRecord {
	return PointerRecord{
		Title:          title,
		TitleLowercase: strings.ToLower(title),
		URL:            WatchURL(videoID),
		ImageURL:       imageURL,
	}
}

func (r PointerRecord) Fields() map[string]any {
	return map[string]any{
		"title":          r.Title,
		"titleLowercase": r.TitleLowercase,
		"url":            r.URL,
		"imageUrl":       r.ImageURL,
	}
}
