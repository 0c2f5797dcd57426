package stream

import (
	"bufio"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
)

// StreamCSV streams CSV rows as instances through a channel. labelCol is the
// index of the label column. Malformed rows are skipped with a warning rather
// than stopping the stream. Close the returned done chan to stop early.
func StreamCSV(path string, labelCol int, out chan<- *Instance) (done chan struct{}, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bufio.NewReader(file))
	done = make(chan struct{})

	go func() {
		// Close the file when the goroutine finishes, either by EOF or early termination.
		defer file.Close()
		// Close the output channel to signal that no more samples will be sent.
		defer close(out)
		for {
			select {
			case <-done:
				return
			default:
				rec, err := reader.Read()
				if err == io.EOF {
					return
				}
				if err != nil {
					slog.Warn("skipping record, read error", "path", path, "err", err)
					continue
				}
				if labelCol < 0 || labelCol >= len(rec) {
					slog.Warn("skipping record, label column out of bounds", "path", path, "labelCol", labelCol)
					continue
				}

				x := make([]float64, 0, len(rec)-1)
				var y float64
				valid := true
				for i, s := range rec {
					v, perr := strconv.ParseFloat(s, 64)
					if perr != nil {
						slog.Warn("skipping record, non-numeric field", "path", path, "field", i)
						valid = false
						break
					}
					if i == labelCol {
						y = v
					} else {
						x = append(x, v)
					}
				}
				if !valid {
					continue
				}

				select {
				case out <- NewInstance(x, y):
				case <-done:
					return
				}
			}
		}
	}()

	return done, nil
}
