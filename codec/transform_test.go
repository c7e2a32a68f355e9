// MODUL: transform_test
// ZWECK: Tests fuer den transform.Transformer-Adapter
// INPUT: gueltige und fehlerhafte UTF-8 Stroeme ueber transform.Reader
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing, errors, io, strings, x/text/transform

package codec

import (
	"errors"
	"io"
	"strings"
	"testing"

	"golang.org/x/text/transform"
)

func TestValidatorPassThrough(t *testing.T) {
	in := "héllo 中文 \U0001F600"

	r := transform.NewReader(strings.NewReader(in), Validator{})
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != in {
		t.Errorf("got %q, erwartet %q", got, in)
	}
}

func TestValidatorRejectsMalformed(t *testing.T) {
	in := []byte{'a', 0xC3, 0x41, 'b'}

	r := transform.NewReader(strings.NewReader(string(in)), Validator{})
	_, err := io.ReadAll(r)
	if !errors.Is(err, ErrInvalidContinuation) {
		t.Errorf("ReadAll() error = %v, erwartet ErrInvalidContinuation", err)
	}
}

func TestValidatorRejectsTruncated(t *testing.T) {
	in := []byte{'a', 'b', 0xE2}

	r := transform.NewReader(strings.NewReader(string(in)), Validator{})
	_, err := io.ReadAll(r)
	if !errors.Is(err, ErrMissingByte) {
		t.Errorf("ReadAll() error = %v, erwartet ErrMissingByte", err)
	}
}

func TestValidatorString(t *testing.T) {
	got, _, err := transform.String(Validator{}, "中文")
	if err != nil {
		t.Fatalf("transform.String() error = %v", err)
	}
	if got != "中文" {
		t.Errorf("got %q, erwartet %q", got, "中文")
	}
}
