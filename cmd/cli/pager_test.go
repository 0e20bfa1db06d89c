package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/limaJavier/coursepicker/pkg/export"
	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCandidates(t *testing.T, amount int) []model.Candidate {
	t.Helper()
	candidates := make([]model.Candidate, 0, amount)
	for i := range amount {
		meetingTime, err := model.NewMeetingTime([]model.Weekday{model.Monday}, model.NewTimeOfDay(9+i, 0), model.NewTimeOfDay(10+i, 0))
		require.NoError(t, err)
		section, err := model.NewSection("EECS", "281", "LEC", "001", "Data Struct&Algor", "ARR", meetingTime)
		require.NoError(t, err)
		candidate, err := model.NewCandidate(1, section)
		require.NoError(t, err)
		candidates = append(candidates, candidate)
	}
	return candidates
}

func page(t *testing.T, input string, candidates []model.Candidate, icsPath string) string {
	t.Helper()
	var out bytes.Buffer
	options := export.Options{WeekOf: time.Date(2014, time.September, 1, 0, 0, 0, 0, time.UTC)}

	err := newPager(strings.NewReader(input), &out, icsPath, options, zerolog.Nop()).Page(candidates)

	require.NoError(t, err)
	return out.String()
}

func TestPage(t *testing.T) {
	t.Run("Enter shows the next schedule", func(t *testing.T) {
		out := page(t, "\n\n\n", newCandidates(t, 3), "")

		assert.Contains(t, out, "Schedule 1 of 3")
		assert.Contains(t, out, "Schedule 3 of 3")
		assert.Contains(t, out, "No more schedules.")
		assert.Contains(t, out, "| EECS 281  |")
	})

	t.Run("q stops paging", func(t *testing.T) {
		out := page(t, "\nq\n", newCandidates(t, 3), "")

		assert.Contains(t, out, "Schedule 2 of 3")
		assert.NotContains(t, out, "Schedule 3 of 3")
		assert.NotContains(t, out, "No more schedules.")
	})

	t.Run("End of input stops paging", func(t *testing.T) {
		out := page(t, "", newCandidates(t, 2), "")

		assert.Contains(t, out, "Schedule 1 of 2")
		assert.NotContains(t, out, "Schedule 2 of 2")
	})

	t.Run("s saves the current schedule", func(t *testing.T) {
		icsPath := filepath.Join(t.TempDir(), "schedule.ics")

		out := page(t, "\ns\nq\n", newCandidates(t, 2), icsPath)

		assert.Contains(t, out, "Saved to "+icsPath)
		content, err := os.ReadFile(icsPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "DTSTART:20140901T100000")
	})

	t.Run("No schedules", func(t *testing.T) {
		out := page(t, "", nil, "")

		assert.Equal(t, "No schedule satisfies every constraint.\n", out)
	})
}

func TestSaveCalendar(t *testing.T) {
	t.Run("Written file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schedule.ics")

		err := saveCalendar(path, func(writer io.Writer) error {
			_, err := io.WriteString(writer, "BEGIN:VCALENDAR")
			return err
		})

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "BEGIN:VCALENDAR", string(content))
	})

	t.Run("Write error", func(t *testing.T) {
		failure := errors.New("disk full")

		err := saveCalendar(filepath.Join(t.TempDir(), "schedule.ics"), func(io.Writer) error { return failure })

		assert.ErrorIs(t, err, failure)
	})

	t.Run("Close error is reported", func(t *testing.T) {
		//** Arrange
		path := filepath.Join(t.TempDir(), "schedule.ics")

		//** Act
		// Closing the file early makes the final close fail
		err := saveCalendar(path, func(writer io.Writer) error {
			return writer.(*os.File).Close()
		})

		//** Assert
		assert.ErrorIs(t, err, os.ErrClosed)
	})

	t.Run("Missing directory", func(t *testing.T) {
		err := saveCalendar(filepath.Join(t.TempDir(), "missing", "schedule.ics"), func(io.Writer) error { return nil })

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
