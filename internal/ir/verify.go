package ir

import "fmt"

// VerifyLabels checks one function's instructions: no label is defined
// twice and every jump target is defined.
func VerifyLabels(body []Instr) error {
	defined := make(map[string]int)
	for _, in := range body {
		if in.Op == OpLabel {
			defined[in.Result]++
		}
	}
	for _, in := range body {
		switch in.Op {
		case OpLabel:
			if n := defined[in.Result]; n > 1 {
				return fmt.Errorf("label %s defined %d times", in.Result, n)
			}
		case OpGoto, OpIf, OpIfFalse:
			if defined[in.Result] == 0 {
				return fmt.Errorf("jump to undefined label %s", in.Result)
			}
		}
	}
	return nil
}
