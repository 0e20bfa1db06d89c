package render

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/samber/lo"
)

const (
	// Resolution is the length of time covered by a block
	Resolution = 30 * time.Minute
	// BlockHeight is the amount of rows in a block
	BlockHeight = 4
	// NumBlocks is the amount of blocks in the schedule frame
	NumBlocks = 24
	// BlockPadding is the padding on either side of a column
	BlockPadding = 2
	// TimeWidth is the width of the time gutter: "11:00 AM" plus one character of padding on the left
	TimeWidth = 8 + 1
)

// StartTime is the time of day at the top of the schedule frame
var StartTime = model.NewTimeOfDay(8, 0)

var (
	ErrLabelTooWide = errors.New("label does not fit in the column")
	ErrOutsideGrid  = errors.New("section does not fit in the schedule frame")
)

type point struct {
	row, column int
}

// Canvas is a fixed text grid simulating a Monday to Friday week view
type Canvas struct {
	columnWidth int
	frameWidth  int
	frameHeight int
	width       int
	height      int
	cells       [][]rune
}

// NewCanvas creates an empty week frame whose columns fit course codes up to the given length
func NewCanvas(maximumCodeLength int) *Canvas {
	canvas := &Canvas{}
	canvas.columnWidth = maximumCodeLength + 2*BlockPadding
	canvas.frameWidth = canvas.columnWidth*len(model.Weekdays) + 1
	canvas.frameHeight = BlockHeight * NumBlocks
	canvas.width = canvas.frameWidth + TimeWidth
	canvas.height = canvas.frameHeight

	canvas.cells = make([][]rune, canvas.height)
	for row := range canvas.cells {
		canvas.cells[row] = []rune(strings.Repeat(" ", canvas.width))
	}

	//** Draw the frame
	canvas.drawBox(point{0, 0}, point{canvas.frameHeight - 1, canvas.frameWidth - 1})

	//** Draw the time markers
	for block := range NumBlocks {
		blockTime := StartTime + model.TimeOfDay(block*int(Resolution/time.Minute))
		canvas.drawString(point{block * BlockHeight, canvas.frameWidth}, " "+blockTime.String())
	}

	return canvas
}

func (canvas *Canvas) ColumnWidth() int {
	return canvas.columnWidth
}

func (canvas *Canvas) FrameWidth() int {
	return canvas.frameWidth
}

// AddSection draws a box labeled with the course code and section label on every day the section meets.
// It fails without drawing anything if the labels are wider than a column or the section falls outside the frame.
func (canvas *Canvas) AddSection(section model.Section) error {
	code, label := section.Code(), section.Label()
	available := canvas.columnWidth - BlockPadding
	if text, ok := lo.Find([]string{code, label}, func(text string) bool { return utf8.RuneCountInString(text) > available }); ok {
		return fmt.Errorf("%w: %q is wider than %d characters", ErrLabelTooWide, text, available)
	}

	meetingTime := section.MeetingTime
	offset := model.TimeDifference(StartTime, meetingTime.Begin())
	if offset < 0 {
		return fmt.Errorf("%w: %v begins before %v", ErrOutsideGrid, section.Code(), StartTime)
	}

	top := toRows(offset)
	// Meetings shorter than a block still get a block, so their labels stay inside the box
	height := max(toRows(meetingTime.Length()), BlockHeight)
	if top+height > canvas.frameHeight-1 {
		return fmt.Errorf("%w: %v ends after the last block", ErrOutsideGrid, section.Code())
	}

	for _, day := range meetingTime.Days() {
		topLeft := point{top, canvas.columnWidth * slices.Index(model.Weekdays, day)}
		bottomRight := point{topLeft.row + height, topLeft.column + canvas.columnWidth}

		canvas.drawBox(topLeft, bottomRight)

		// Roughly center the text
		row := (topLeft.row + bottomRight.row) / 2
		column := topLeft.column + BlockPadding
		canvas.drawString(point{row - 1, column}, code)
		canvas.drawString(point{row, column}, label)
	}
	return nil
}

// toRows converts a duration into rows, rounding down to whole blocks
func toRows(duration time.Duration) int {
	return int(duration/Resolution) * BlockHeight
}

// drawBox draws a box from the top left to the bottom right corner
func (canvas *Canvas) drawBox(topLeft, bottomRight point) {
	topRight := point{topLeft.row, bottomRight.column}
	bottomLeft := point{bottomRight.row, topLeft.column}

	canvas.drawLine(topLeft, topRight)
	canvas.drawLine(topLeft, bottomLeft)
	canvas.drawLine(bottomLeft, bottomRight)
	canvas.drawLine(topRight, bottomRight)
}

// drawLine draws a straight line like "+-----+" between two points sharing a row or a column.
// Corners already drawn are never overwritten by edges.
func (canvas *Canvas) drawLine(start, end point) {
	if end.row < start.row || end.column < start.column {
		start, end = end, start
	}

	character := '-'
	dRow, dColumn := 0, 1
	if start.row < end.row {
		character = '|'
		dRow, dColumn = 1, 0
	}

	for current := start; current != end; {
		current = point{current.row + dRow, current.column + dColumn}
		if canvas.cells[current.row][current.column] != '+' {
			canvas.cells[current.row][current.column] = character
		}
	}

	canvas.cells[start.row][start.column] = '+'
	canvas.cells[end.row][end.column] = '+'
}

// drawString writes the text starting at the given point, one character per column
func (canvas *Canvas) drawString(start point, text string) {
	column := start.column
	for _, character := range text {
		canvas.cells[start.row][column] = character
		column++
	}
}

// Lines returns the canvas row by row
func (canvas *Canvas) Lines() []string {
	return lo.Map(canvas.cells, func(row []rune, _ int) string { return string(row) })
}

func (canvas *Canvas) WriteTo(writer io.Writer) (int64, error) {
	var written int64
	for _, line := range canvas.Lines() {
		n, err := io.WriteString(writer, line+"\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Render lays out every section of the candidate on a new canvas and returns its lines
func Render(candidate model.Candidate) ([]string, error) {
	sections := candidate.Sections()
	longestCodeLength := lo.Max(lo.Map(sections, func(section model.Section, _ int) int {
		return utf8.RuneCountInString(section.Code())
	}))

	canvas := NewCanvas(longestCodeLength)
	for _, section := range sections {
		if err := canvas.AddSection(section); err != nil {
			return nil, err
		}
	}
	return canvas.Lines(), nil
}
