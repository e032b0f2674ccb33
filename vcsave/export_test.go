package vcsave

// RawData gives the tests in vcsave_test the SaveFile's own buffer.
func RawData(s *SaveFile) []byte { return s.data }
