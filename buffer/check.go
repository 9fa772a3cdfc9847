package buffer

import (
	"fmt"

	"github.com/hangxie/geocolumn/common"
)

// CheckNulls fails when a present validity buffer does not cover exactly
// expected rows.
func CheckNulls(nulls *NullBuffer, expected int) error {
	if nulls == nil {
		return nil
	}
	if nulls.Len() != expected {
		return fmt.Errorf("validity buffer covers %d rows, array has %d: %w", nulls.Len(), expected, common.ErrMalformedBuffer)
	}
	return nil
}

// CheckTerminalOffset fails when the last offset of a level does not equal
// the length of the buffer that level partitions.
func CheckTerminalOffset[O common.Offset](level string, offsets OffsetBuffer[O], childLen int) error {
	if offsets.Len() == 0 {
		return fmt.Errorf("%s offsets are empty: %w", level, common.ErrMalformedBuffer)
	}
	if last := offsets.Last(); last != childLen {
		return fmt.Errorf("last %s offset %d does not match child length %d: %w", level, last, childLen, common.ErrMalformedBuffer)
	}
	return nil
}
