package util

import (
	"fmt"
	"strings"
)

// JoinString renders every element with fmt.Stringer and joins them with sep
func JoinString[A fmt.Stringer](elems []A, sep string) string {
	sb := strings.Builder{}
	for i, elem := range elems {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(elem.String())
	}
	return sb.String()
}
