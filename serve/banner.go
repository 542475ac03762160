// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serve

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"
)

// colorWriter downsamples ANSI color to what the terminal supports.
// Production output is stripped of ANSI sequences entirely.
func colorWriter(out io.Writer, cfg *config) *colorprofile.Writer {
	w := colorprofile.NewWriter(out, os.Environ())
	if cfg.environment == EnvironmentProduction {
		w.Profile = colorprofile.NoTTY
	}

	return w
}

// printBanner renders the startup banner: the service name as ASCII
// art with a gradient, followed by a small info table.
func printBanner(out io.Writer, cfg *config, addr, protocol string) {
	w := colorWriter(out, cfg)

	gradient := []string{"10", "11"}
	if cfg.environment == EnvironmentDevelopment {
		gradient = []string{"12", "14", "10", "11"}
	}

	var art strings.Builder
	for _, line := range figure.NewFigure(cfg.serviceName, "", false).Slicify() {
		if strings.TrimSpace(line) == "" {
			_, _ = art.WriteString("\n")

			continue
		}
		for i, char := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(gradient[i%len(gradient)])).
				Bold(true)
			_, _ = art.WriteString(style.Render(string(char)))
		}
		_, _ = art.WriteString("\n")
	}

	displayAddr := addr
	if strings.HasPrefix(addr, ":") {
		displayAddr = "0.0.0.0" + addr
	}
	scheme := "http://"
	if protocol == "HTTPS" {
		scheme = "https://"
	}
	displayAddr = scheme + displayAddr

	h2cState := "Disabled"
	if cfg.h2c {
		h2cState = "Enabled"
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)

	info := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return labelStyle.Padding(0, 1)
			}

			return valueStyle.Padding(0, 1)
		}).
		Rows(
			[]string{"Address", displayAddr},
			[]string{"Environment", cfg.environment},
			[]string{"HTTP/2 cleartext", h2cState},
			[]string{"Shutdown grace", cfg.shutdownTimeout.String()},
		).
		Width(bannerWidth(out))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, art.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, info.Render())
}

// bannerWidth clamps the info table to the terminal, falling back to
// 60 columns when no terminal is attached.
func bannerWidth(out io.Writer) int {
	const fallback = 60

	file, ok := out.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}

	return min(width, fallback)
}
