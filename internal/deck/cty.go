package deck

import (
	"context"
	"fmt"

	"github.com/specialistvlad/deckgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Appender is the write side of an item, as used by the parser.
type Appender[T any] interface {
	Name() string
	Append(value T)
	AppendDefault(value T)
}

// AppendCtyNumbers appends the numbers held by v to dst. v may be a single
// number or a list, set or tuple of numbers. Null elements stand for values
// omitted in the input and are replaced by def through AppendDefault.
//
// Elements are checked before anything is appended, so a conversion failure
// leaves dst untouched.
func AppendCtyNumbers[T Number](ctx context.Context, dst Appender[T], v cty.Value, def T) error {
	elems, err := ctyElements(v)
	if err != nil {
		return fmt.Errorf("item '%s': %w", dst.Name(), err)
	}

	values := make([]T, len(elems))
	defaulted := make([]bool, len(elems))
	for i, el := range elems {
		if el.IsNull() {
			defaulted[i] = true
			continue
		}
		num, err := convert.Convert(el, cty.Number)
		if err != nil {
			return fmt.Errorf("%w: item '%s', element %d: %s", ErrUnsupportedValue, dst.Name(), i, err)
		}
		if err := gocty.FromCtyValue(num, &values[i]); err != nil {
			return fmt.Errorf("%w: item '%s', element %d: %s", ErrUnsupportedValue, dst.Name(), i, err)
		}
	}

	appendConverted(ctx, dst, values, defaulted, def)
	return nil
}

// AppendCtyStrings is the text counterpart of AppendCtyNumbers.
func AppendCtyStrings(ctx context.Context, dst Appender[string], v cty.Value, def string) error {
	elems, err := ctyElements(v)
	if err != nil {
		return fmt.Errorf("item '%s': %w", dst.Name(), err)
	}

	values := make([]string, len(elems))
	defaulted := make([]bool, len(elems))
	for i, el := range elems {
		if el.IsNull() {
			defaulted[i] = true
			continue
		}
		str, err := convert.Convert(el, cty.String)
		if err != nil {
			return fmt.Errorf("%w: item '%s', element %d: %s", ErrUnsupportedValue, dst.Name(), i, err)
		}
		values[i] = str.AsString()
	}

	appendConverted(ctx, dst, values, defaulted, def)
	return nil
}

func appendConverted[T any](ctx context.Context, dst Appender[T], values []T, defaulted []bool, def T) {
	defaults := 0
	for i, v := range values {
		if defaulted[i] {
			dst.AppendDefault(def)
			defaults++
			continue
		}
		dst.Append(v)
	}
	ctxlog.FromContext(ctx).Debug("Appended cty values to item.", "item", dst.Name(), "count", len(values), "defaults", defaults)
}

// ctyElements flattens v into the element values to append. A null v counts as
// a single omitted value.
func ctyElements(v cty.Value) ([]cty.Value, error) {
	if v.IsNull() {
		return []cty.Value{v}, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("%w: value is not known", ErrUnsupportedValue)
	}

	ty := v.Type()
	switch {
	case ty.IsListType(), ty.IsSetType(), ty.IsTupleType():
		return v.AsValueSlice(), nil
	case ty.IsPrimitiveType():
		return []cty.Value{v}, nil
	default:
		return nil, fmt.Errorf("%w: cannot read values from %s", ErrUnsupportedValue, ty.FriendlyName())
	}
}
