// Package banner prints the drugdict title.
package banner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/drugner/drugdict/shared/ansi"
	"github.com/drugner/drugdict/shared/console"
)

type bannerColor int

const (
	bannerPharmacyGreen bannerColor = iota
	bannerLabBlue
	bannerCapsuleRed
	bannerAmberVial
)

var bannerTitleColors = []string{
	"\x1b[38;2;0;150;80m",
	"\x1b[38;2;15;98;254m",
	"\x1b[38;2;228;0;43m",
	"\x1b[38;2;255;153;0m",
}

var bannerTitleColorNames = []string{
	"PharmacyGreen",
	"LabBlue",
	"CapsuleRed",
	"AmberVial",
}

const (
	bannerTitleColorDefault        = bannerPharmacyGreen
	bannerTitleColorBlueBackground = bannerAmberVial
	bannerTitleColorEnv            = "DRUGDICT_BANNER_COLOR"
)

var titleLines = []string{
	" ___                    ___  _      _   ",
	"|   \\ _ _ _  _ __ _    |   \\(_)__ _| |_ ",
	"| |) | '_| || / _` |   | |) | / _|  _|",
	"|___/|_|  \\_,_\\__, |   |___/|_\\__|\\__|",
	"              |___/                     ",
}

func printCenteredLines(w io.Writer, lines []string, width int) {
	for _, line := range lines {
		pad := 0

		if width > len(line) {
			pad = (width - len(line)) / 2
		}

		if pad > 0 {
			fmt.Fprint(w, strings.Repeat(" ", pad))
		}

		fmt.Fprintln(w, line)
	}
}

func bannerTitleColor() bannerColor {
	if color, ok := bannerTitleColorFromEnv(); ok {
		return color
	}

	if console.IsBlueBackground() {
		return bannerTitleColorBlueBackground
	}

	return bannerTitleColorDefault
}

func bannerTitleColorFromEnv() (bannerColor, bool) {
	raw := strings.TrimSpace(os.Getenv(bannerTitleColorEnv))

	if raw == "" {
		return 0, false
	}

	for idx := range bannerTitleColors {
		if strings.EqualFold(raw, bannerTitleColorNames[idx]) {
			return bannerColor(idx), true
		}
	}

	return 0, false
}

// DrawBannerTitle prints the application title banner to stdout.
// Plain text is printed when stdout is not a terminal.
func DrawBannerTitle() {
	if !console.IsTerminal(os.Stdout) {
		printCenteredLines(os.Stdout, titleLines, 0)
		return
	}

	ansi.EnableANSI()

	fmt.Print(bannerTitleColors[bannerTitleColor()])
	printCenteredLines(os.Stdout, titleLines, console.Width(os.Stdout, 80))
	fmt.Print("\x1b[0m")
}
