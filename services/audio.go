package services

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	tcmp3 "github.com/tcolgate/mp3"
)

// IsMP3 повторяет проверку формы загрузки: подходит либо content-type
// audio/mpeg, либо расширение .mp3.
func IsMP3(filename, contentType string) bool {
	if strings.Contains(contentType, "audio/mpeg") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".mp3")
}

// MP3Duration считает длительность файла в секундах, проходя по кадрам.
func MP3Duration(r io.Reader) (float64, error) {
	var (
		dur     float64
		dec     = tcmp3.NewDecoder(r)
		frame   tcmp3.Frame
		skipped int
	)

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		dur += frame.Duration().Seconds()
	}

	return dur, nil
}

// MP3DurationFromBytes — обёртка для уже прочитанного файла.
func MP3DurationFromBytes(data []byte) (float64, error) {
	return MP3Duration(bytes.NewReader(data))
}

// MP3DurationFromURL скачивает файл по URL и считает длительность.
func MP3DurationFromURL(url string) (float64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return MP3Duration(resp.Body)
}
