package jsonnav

// MaxNestingDepth is the maximum number of nested arrays and objects
// readers and writers accept.
const MaxNestingDepth = 256

// tokenState validates token sequences. It's shared by all readers
// and writers of both encodings.
type tokenState struct {
	// nesting holds one bit per open container, 1 for objects.
	nesting [MaxNestingDepth / 64]uint64
	depth   int
	last    TokenType
}

func (s *tokenState) inObject() bool {
	if s.depth < 1 {
		return false
	}
	d := s.depth - 1
	return s.nesting[d/64]&(1<<(d%64)) != 0
}

func (s *tokenState) inArray() bool { return s.depth > 0 && !s.inObject() }

// fieldNameExpected returns true if the next token must be a field name.
func (s *tokenState) fieldNameExpected() bool {
	return s.inObject() && s.last != TokenTypeFieldName
}

// isComplete returns true once the root value is complete.
func (s *tokenState) isComplete() bool {
	return s.depth == 0 && s.last != TokenTypeNotStarted
}

// afterValue returns true if the previous token completed a value
// or a property inside the current container.
func (s *tokenState) afterValue() bool {
	switch s.last {
	case TokenTypeNotStarted, TokenTypeBeginArray, TokenTypeBeginObject, TokenTypeFieldName:
		return false
	}
	return true
}

func (s *tokenState) push(object bool) error {
	if s.depth >= MaxNestingDepth {
		return ErrMaxNestingExceeded
	}
	i, b := s.depth/64, uint64(1)<<(s.depth%64)
	if object {
		s.nesting[i] |= b
	} else {
		s.nesting[i] &^= b
	}
	s.depth++
	return nil
}

// register validates t against the current state and applies it.
func (s *tokenState) register(t TokenType) error {
	if err := s.check(t); err != nil {
		return err
	}
	switch t {
	case TokenTypeBeginArray:
		if err := s.push(false); err != nil {
			return err
		}
	case TokenTypeBeginObject:
		if err := s.push(true); err != nil {
			return err
		}
	case TokenTypeEndArray, TokenTypeEndObject:
		s.depth--
	}
	s.last = t
	return nil
}

// registerComplete registers a whole value at once. Containers don't
// change the depth and are recorded as their closing token.
func (s *tokenState) registerComplete(t TokenType) error {
	if err := s.check(t); err != nil {
		return err
	}
	switch t {
	case TokenTypeBeginArray:
		t = TokenTypeEndArray
	case TokenTypeBeginObject:
		t = TokenTypeEndObject
	}
	s.last = t
	return nil
}

func (s *tokenState) check(t TokenType) error {
	switch t {
	case TokenTypeNotStarted:
		return ErrUnexpectedToken
	case TokenTypeFieldName:
		if !s.fieldNameExpected() {
			return ErrUnexpectedToken
		}
	case TokenTypeEndArray:
		if !s.inArray() {
			return ErrUnexpectedEndArray
		}
	case TokenTypeEndObject:
		if !s.inObject() {
			return ErrUnexpectedEndObject
		}
		if s.last == TokenTypeFieldName {
			return ErrMissingPropertyValue
		}
	default:
		switch {
		case s.depth == 0:
			if s.last != TokenTypeNotStarted {
				return ErrUnexpectedToken
			}
		case s.inObject() && s.last != TokenTypeFieldName:
			return ErrFieldNameExpected
		}
	}
	return nil
}

// endOfInputError returns the error for input ending in the current
// state or nil if ending is legal.
func (s *tokenState) endOfInputError() error {
	switch {
	case s.inObject():
		return ErrMissingEndObject
	case s.inArray():
		return ErrMissingEndArray
	}
	return nil
}
