// dtrscan is a one-shot review tool: capture text from a scan (or read a
// .txt drop), run the extractor, and print the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/dtr"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/ocr"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	companyID := flag.String("company", "", "company id for template-aware runs")
	tesseract := flag.String("tesseract", os.Getenv("TESSERACT_BIN"), "tesseract binary")
	lang := flag.String("lang", "eng", "tesseract language")
	flag.Parse()

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "dtrscan [flags] <scan-file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	capturer := ocr.NewExtractor(ocr.Config{
		Tesseract:           *tesseract,
		TesseractLang:       *lang,
		EnableTSVConfidence: true,
	}, logger)

	capture, err := capturer.Extract(ctx, path)
	if err != nil {
		logger.Error("text capture failed", "path", path, "error", err)
		os.Exit(1)
	}

	res, err := dtr.Extract(capture.Text, *companyID)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	out := struct {
		Capture struct {
			Method     string  `json:"method"`
			Confidence float32 `json:"confidence"`
			Bytes      int     `json:"bytes"`
		} `json:"capture"`
		Result dtr.Result `json:"result"`
	}{Result: res}
	out.Capture.Method = capture.Method
	out.Capture.Confidence = capture.Confidence
	out.Capture.Bytes = len(capture.Text)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
