package dispatch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"convimg/transform"

	"github.com/samber/lo"
)

var (
	ErrInvalidArgument = transform.ErrInvalidArgument
	ErrParse           = errors.New("could not parse input")
)

// ParamKind tells which values have to be asked for before an entry can run.
type ParamKind int

const (
	NoParams ParamKind = iota
	FactorParam
	DirectionParam
	SizeParam
)

type Entry struct {
	Selector int
	Title    string
	Op       Operation
	Params   ParamKind
	Subs     []Entry
}

// Menu is the top level selection list, in display order.
var Menu = []Entry{
	{Selector: 1, Title: "Adjust Brightness", Op: Brightness, Params: FactorParam},
	{Selector: 2, Title: "Adjust Contrast", Op: Contrast, Params: FactorParam},
	{Selector: 3, Title: "Flip Image", Op: FlipHorizontal, Params: DirectionParam},
	{Selector: 4, Title: "Convert to Grayscale/Sepia", Subs: []Entry{
		{Selector: 1, Title: "Convert to Grayscale", Op: Grayscale},
		{Selector: 2, Title: "Convert to Sepia", Op: Sepia},
	}},
	{Selector: 5, Title: "Apply Blur/Sharpness", Subs: []Entry{
		{Selector: 1, Title: "Apply Blur", Op: Blur},
		{Selector: 2, Title: "Apply Sharpness", Op: Sharpen},
	}},
	{Selector: 6, Title: "Crop Center", Op: CropCenter, Params: SizeParam},
	{Selector: 7, Title: "Crop Circle", Op: CropCircle},
	{Selector: 0, Title: "All functions", Op: All},
}

func find(entries []Entry, selector int) (Entry, error) {
	e, ok := lo.Find(entries, func(e Entry) bool { return e.Selector == selector })
	if !ok {
		return Entry{}, fmt.Errorf("%w: choice %d, should be one of %s", ErrInvalidArgument, selector, Choices(entries))
	}
	return e, nil
}

func Lookup(selector int) (Entry, error) {
	return find(Menu, selector)
}

func (e Entry) Sub(selector int) (Entry, error) {
	return find(e.Subs, selector)
}

func (e Entry) Grouped() bool {
	return len(e.Subs) > 0
}

// Choices renders the valid selectors of entries, e.g. "1 or 2".
func Choices(entries []Entry) string {
	sels := lo.Map(entries, func(e Entry, _ int) string { return strconv.Itoa(e.Selector) })
	if len(sels) < 2 {
		return strings.Join(sels, "")
	}
	return strings.Join(sels[:len(sels)-1], ", ") + " or " + sels[len(sels)-1]
}

func ParseSelector(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: choice %q is not a number", ErrParse, strings.TrimSpace(s))
	}
	return n, nil
}

func ParseFactor(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: factor %q is not a number", ErrParse, strings.TrimSpace(s))
	}
	return f, CheckFactor(f)
}

func ParseDimension(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrParse, name, strings.TrimSpace(s))
	}
	return n, CheckDimension(name, n)
}

func CheckFactor(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return fmt.Errorf("%w: factor %v, should be a finite number >= 0", ErrInvalidArgument, f)
	}
	return nil
}

func CheckDimension(name string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s %d, should be positive", ErrInvalidArgument, name, n)
	}
	return nil
}
