package httpclient

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// bodyDecoder wraps a compressed response body.
type bodyDecoder func(body io.Reader) (io.ReadCloser, error)

var bodyDecoders = map[string]bodyDecoder{
	"gzip": func(body io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(body)
	},
	"br": func(body io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(body)), nil
	},
	"zstd": func(body io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// DefaultContentEncodings are advertised unless WithContentEncodings says otherwise.
var DefaultContentEncodings = []string{"gzip", "br", "zstd"}

// decodingTransport advertises a set of content encodings and unwraps
// responses that use one of them. Other encodings pass through untouched.
type decodingTransport struct {
	base           http.RoundTripper
	acceptEncoding string
	decoders       map[string]bodyDecoder
}

// newDecodingTransport wraps base for the given encodings. Unknown names are
// ignored; with none left the base transport is returned as is.
func newDecodingTransport(base http.RoundTripper, encodings []string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if t, ok := base.(*decodingTransport); ok {
		base = t.base
	}

	decoders := make(map[string]bodyDecoder, len(encodings))
	accepted := make([]string, 0, len(encodings))
	for _, name := range encodings {
		name = strings.ToLower(strings.TrimSpace(name))
		dec, ok := bodyDecoders[name]
		if !ok {
			continue
		}
		if _, dup := decoders[name]; dup {
			continue
		}
		decoders[name] = dec
		accepted = append(accepted, name)
	}
	if len(decoders) == 0 {
		return base
	}

	return &decodingTransport{
		base:           base,
		acceptEncoding: strings.Join(accepted, ", "),
		decoders:       decoders,
	}
}

func (t *decodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", t.acceptEncoding)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	dec, ok := t.decoders[outermostEncoding(resp.Header.Get("Content-Encoding"))]
	if !ok {
		return resp, nil
	}
	reader, err := dec(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Body = &decodedBody{ReadCloser: reader, raw: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	return resp, nil
}

// decodedBody closes both the decoder and the raw response body.
type decodedBody struct {
	io.ReadCloser
	raw io.Closer
}

func (b *decodedBody) Close() error {
	err := b.ReadCloser.Close()
	if rawErr := b.raw.Close(); err == nil {
		err = rawErr
	}
	return err
}

// outermostEncoding returns the last listed encoding, lowercased.
func outermostEncoding(header string) string {
	if i := strings.LastIndexByte(header, ','); i >= 0 {
		header = header[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(header))
}
