package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/voxkit/voxkit/pkg/client"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8000", "server url")
	fileFlag := flag.String("file", "", "audio sample to upload (mp3 or wav, 1-10s)")
	modelFlag := flag.String("model", "codec", "voice model")
	textFlag := flag.String("text", "Hello from voxkit.", "text to synthesize")
	outFlag := flag.String("out", "speech.mp3", "output file for synthesized audio")

	flag.Parse()

	if *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: client -file sample.wav [-text ...] [-model ...]")
		os.Exit(2)
	}

	ctx := context.Background()

	c := client.New(*urlFlag)

	uploaded, err := c.Files.Upload(ctx, *fileFlag)

	if err != nil {
		fail("upload", err)
	}

	fmt.Printf("uploaded %s (%.1fs, %s)\n", uploaded.FileID, uploaded.Duration, uploaded.Format)

	created, err := c.Voices.Create(ctx, client.CreateVoiceRequest{
		FileID: uploaded.FileID,
		Model:  *modelFlag,
	})

	if err != nil {
		fail("create voice", err)
	}

	fmt.Printf("voice %s (provider id %s)\n", created.VoiceID, created.ProviderVoiceID)

	speech, err := c.Speech.Generate(ctx, created.VoiceID, *textFlag)

	if err != nil {
		fail("synthesize", err)
	}

	resp, err := http.Get(*urlFlag + speech.AudioURL)

	if err != nil {
		fail("fetch audio", err)
	}

	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)

	if err != nil {
		fail("fetch audio", err)
	}

	if err := os.WriteFile(*outFlag, audio, 0o644); err != nil {
		fail("write audio", err)
	}

	fmt.Printf("wrote %s (%d bytes, served at %s)\n", *outFlag, len(audio), speech.AudioURL)
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
