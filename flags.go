package padmap

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags is a repeatable float flag. Each occurrence may also carry
// a comma-separated list. The first Set replaces the default.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	var values []float64
	for _, field := range strings.Split(valueStr, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}
	f.Array = append(f.Array, values...)
	return nil
}

func (f *FloatArrayFlags) String() string {
	if f == nil {
		return "[]"
	}
	return fmt.Sprint(f.Array)
}

// RangeFlag is a "lo:hi" flag value.
type RangeFlag struct {
	Lo, Hi float64
}

func (r *RangeFlag) Set(valueStr string) error {
	lo, hi, ok := strings.Cut(valueStr, ":")
	if !ok {
		return fmt.Errorf("range %q is not of the form lo:hi", valueStr)
	}
	l, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return err
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return err
	}
	if l >= h {
		return fmt.Errorf("range %q is empty", valueStr)
	}
	r.Lo, r.Hi = l, h
	return nil
}

func (r *RangeFlag) String() string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(r.Lo, 'g', -1, 64) + ":" + strconv.FormatFloat(r.Hi, 'g', -1, 64)
}
