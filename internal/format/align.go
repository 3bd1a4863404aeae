package format

// Port declarations are aligned so that, measured in rendered columns from the
// first character of the direction keyword, '[' ends at column 10, ':' at 15
// and ']' at 20.
var portColumns = map[string]int{
	"[": 10,
	":": 15,
	"]": 20,
}

// writePort emits text while port mode is active. The column includes the
// delimiters already written; when it has reached the target the literal is
// written without padding.
func (s *state) writePort(text string) {
	if s.portStart < 0 {
		s.portStart = s.w.Len()
	}
	if target, ok := portColumns[text]; ok {
		col := s.w.Len() - s.portStart
		if pad := target - (col + len(text)); pad > 0 {
			s.w.Pad(pad)
		}
	}
	s.w.WriteString(text)
	if text == ";" {
		s.port = false
		s.portStart = -1
	}
}
