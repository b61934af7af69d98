package mediafire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string or number. The API sends numeric fields
// such as error codes and secrets in either form. null decodes as empty; any
// other JSON type is an error.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	return fmt.Errorf("expected string or number, got %.32s", trimmed)
}

func (f FlexString) String() string {
	return string(f)
}

// Int returns the value as an int, zero when it is empty or not a number.
func (f FlexString) Int() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(f)))
	if err != nil {
		return 0
	}
	return n
}

// Envelope is the parsed "response" object of an API reply. Raw keeps the
// whole object so endpoint wrappers can decode their own fields.
type Envelope struct {
	Result       string     `json:"result"`
	Error        FlexString `json:"error"`
	Message      string     `json:"message"`
	NewKey       string     `json:"new_key"`
	SessionToken string     `json:"session_token"`
	SecretKey    FlexString `json:"secret_key"`
	Time         FlexString `json:"time"`

	Raw json.RawMessage `json:"-"`
}

type envelopeWrapper struct {
	Response json.RawMessage `json:"response"`
}

func parseEnvelope(body []byte) (*Envelope, error) {
	var wrapper envelopeWrapper
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper.Response) == 0 || string(wrapper.Response) == "null" {
		return nil, fmt.Errorf("missing response object")
	}

	var env Envelope
	if err := json.Unmarshal(wrapper.Response, &env); err != nil {
		return nil, err
	}
	env.Raw = wrapper.Response
	return &env, nil
}

// Failed reports a logical error carried in a transport-level success.
func (e *Envelope) Failed() bool {
	if e == nil {
		return false
	}
	return strings.EqualFold(e.Result, "error") || e.Error.Int() != 0
}

// RotatesKey reports whether the server asked for the signing secret to
// advance.
func (e *Envelope) RotatesKey() bool {
	return e != nil && e.NewKey == "yes"
}

// IssuedToken returns the v2 token carried by an upgrade or login response.
func (e *Envelope) IssuedToken() (token string, secret uint64, issuedAt string, ok bool) {
	if e == nil || e.SessionToken == "" || e.SecretKey == "" || e.Time == "" {
		return "", 0, "", false
	}
	secret, err := strconv.ParseUint(strings.TrimSpace(e.SecretKey.String()), 10, 64)
	if err != nil {
		return "", 0, "", false
	}
	return e.SessionToken, secret, e.Time.String(), true
}

// Decode unmarshals the response object into v.
func (e *Envelope) Decode(v any) error {
	if e == nil || len(e.Raw) == 0 {
		return fmt.Errorf("empty response")
	}
	if err := json.Unmarshal(e.Raw, v); err != nil {
		return &DecodeError{Raw: string(e.Raw), Err: err}
	}
	return nil
}
