package ffmpeg

import "time"

const (
	name = "ffmpeg"

	// Loudness extraction decodes the whole recording; multi-hour lectures
	// on slow storage need generous headroom.
	loudnessTimeout = 15 * time.Minute

	// Stream-copy trims do no transcoding and finish in seconds.
	trimTimeout = 2 * time.Minute
)
