package asm6502

// emit appends the tokens for one match of r against input. m is the submatch
// index slice returned by the rule's pattern and at is the position of input[0].
func emit(dst []Token, r *rule, input string, m []int, at Position) []Token {
	if len(r.groups) == 0 {
		if !r.emits {
			return dst
		}
		return append(dst, Token{Kind: r.kind, Text: input[m[0]:m[1]], Pos: at})
	}

	cur, done := at, m[0]
	for i, kind := range r.groups {
		start, end := m[2+2*i], m[3+2*i]
		if start < 0 {
			// the group did not take part in the match
			dst = append(dst, Token{Kind: kind, Pos: cur})
			continue
		}
		if start > done {
			cur = cur.advance(input[done:start])
			done = start
		}
		text := input[start:end]
		dst = append(dst, Token{Kind: kind, Text: text, Pos: cur})
		cur = cur.advance(text)
		done = end
	}
	return dst
}

func (p Position) advance(text string) Position {
	p.Offset += len(text)
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}
