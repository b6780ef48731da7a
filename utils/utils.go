package utils

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/schollz/progressbar/v3"
)

func NewBar(size int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(size,
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// Returns true if the slice is empty or contains the element
func IsEmptyOrContains[T comparable](s []T, v T) bool {
	return len(s) == 0 || slices.Contains(s, v)
}

// Redirects the default slog logger to the given file. The returned function
// closes the file and should be deferred by the caller.
func SetLogFile(filename string) (func(), error) {
	fh, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("Could not create log '%s': %w", filename, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(fh, nil)))
	return func() { fh.Close() }, nil
}
