package domain

import "strings"

// videoIDLength is the fixed length of a YouTube video identifier.
const videoIDLength = 11

// ExtractVideoID pulls the video identifier out of a watch URL. URLs with a
// v= query parameter use its value up to the next &; any other form falls
// back to the final path segment. Inputs without either separator come back
// unchanged.
func ExtractVideoID(videoURL string) string {
	if _, after, found := strings.Cut(videoURL, "v="); found {
		id, _, _ := strings.Cut(after, "&")
		return id
	}
	return videoURL[strings.LastIndex(videoURL, "/")+1:]
}

// ValidVideoID reports whether id looks like a well-formed video identifier.
func ValidVideoID(id string) bool {
	return len(id) == videoIDLength
}
