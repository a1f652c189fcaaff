//go:build mage

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/notepacket/internal/config"
	"github.com/pdiddy/notepacket/pkg/types"
)

const sampleDir = "sample"

// sampleDirs lists the working directories of the sample workspace.
var sampleDirs = []string{
	"sample/source",
	"sample/target",
}

// Sample creates a throwaway workspace under sample/ with numbered images,
// a one-page template, and a config holding two users.
func Sample() error {
	for _, dir := range sampleDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}

	for i := 101; i <= 106; i++ {
		path := filepath.Join(sampleDir, "source", strconv.Itoa(i)+".png")
		if err := writeSampleImage(path, 400+10*(i-100), 240, uint8(i*37)); err != nil {
			return err
		}
	}

	template := filepath.Join(sampleDir, "template.pdf")
	if err := writeSampleTemplate(template); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.SourceDir = filepath.Join(sampleDir, "source")
	cfg.TargetDir = filepath.Join(sampleDir, "target")
	cfg.TemplatePath = template
	cfg.Users = []types.User{
		{Name: "Alice", NoteTitle: "Week 1", NoteNumbers: "101,102,103"},
		{Name: "Bob", NoteTitle: "Week 1", NoteNumbers: "104,105,106,199"},
	}
	path := filepath.Join(sampleDir, config.DefaultFile)
	if err := config.Save(path, &cfg); err != nil {
		return err
	}
	fmt.Printf("Sample workspace ready. Try: notepacket --config %s compose --all\n", path)
	return nil
}

func writeSampleImage(path string, w, h int, shade uint8) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: uint8(x % 256), B: uint8(y % 256), A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

func writeSampleTemplate(path string) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(40, 40, "Review notes")
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(40, 50, 555, 50)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(40, 820, "notepacket sample template")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
