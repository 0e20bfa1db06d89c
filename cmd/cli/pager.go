package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/limaJavier/coursepicker/pkg/export"
	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/limaJavier/coursepicker/pkg/render"
	"github.com/rs/zerolog"
)

const prompt = "[Enter] next, [s] save as iCalendar, [q] quit: "

// pager shows schedules one by one, waiting for the user between them
type pager struct {
	in      *bufio.Scanner
	out     io.Writer
	icsPath string
	options export.Options
	log     zerolog.Logger
}

func newPager(in io.Reader, out io.Writer, icsPath string, options export.Options, log zerolog.Logger) *pager {
	return &pager{
		in:      bufio.NewScanner(in),
		out:     out,
		icsPath: icsPath,
		options: options,
		log:     log,
	}
}

func (pager *pager) Page(candidates []model.Candidate) error {
	if len(candidates) == 0 {
		fmt.Fprintln(pager.out, "No schedule satisfies every constraint.")
		return nil
	}

	for i, candidate := range candidates {
		fmt.Fprintf(pager.out, "Schedule %d of %d\n", i+1, len(candidates))
		pager.show(candidate)

		for {
			fmt.Fprint(pager.out, prompt)
			if !pager.in.Scan() {
				return pager.in.Err()
			}
			answer := strings.ToLower(strings.TrimSpace(pager.in.Text()))
			if answer == "q" {
				return nil
			} else if answer == "s" {
				if err := pager.save(candidate); err != nil {
					return err
				}
				fmt.Fprintf(pager.out, "Saved to %v\n", pager.icsPath)
				continue
			}
			break
		}
	}
	fmt.Fprintln(pager.out, "No more schedules.")
	return nil
}

func (pager *pager) show(candidate model.Candidate) {
	fmt.Fprintln(pager.out, candidate)
	lines, err := render.Render(candidate)
	if err != nil {
		// A schedule that doesn't fit in the grid is still a valid schedule
		pager.log.Warn().Err(err).Msg("cannot render schedule")
		return
	}
	for _, line := range lines {
		fmt.Fprintln(pager.out, line)
	}
}

func (pager *pager) save(candidate model.Candidate) error {
	return saveCalendar(pager.icsPath, func(writer io.Writer) error {
		return export.Write(writer, candidate, pager.options)
	})
}

// saveCalendar creates the file and fills it with write. Failing to close the file is an error too.
func saveCalendar(path string, write func(writer io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("cannot close %q: %w", path, closeErr)
		}
	}()

	if err := write(file); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return nil
}
