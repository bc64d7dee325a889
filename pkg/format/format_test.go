// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/altshiftab/jsonvalidate/pkg/draft4"
	"github.com/altshiftab/jsonvalidate/pkg/format"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

func TestFormats(t *testing.T) {
	tests := []struct {
		format string
		good   []any
		bad    []string
	}{
		{
			format: "date-time",
			good:   []any{"1963-06-19T08:30:06.283185Z", "1998-12-31T23:59:60Z", "1998-12-31T15:59:60.123-08:00", 12},
			bad:    []string{"1963-06-19T08:30:06", "06/19/1963 08:30:06 PST", "1998-12-31T22:59:60Z", "2013-02-29T08:30:06Z"},
		},
		{
			format: "date",
			good:   []any{"2020-02-29", "1963-06-19"},
			bad:    []string{"2021-02-29", "1963-13-01", "19630619"},
		},
		{
			format: "time",
			good:   []any{"08:30:06", "08:30:06.5Z", "08:30:06+01:00"},
			bad:    []string{"8:30 AM", "24:00:00", "08:30:06+25:00"},
		},
		{
			format: "email",
			good:   []any{"joe.bloggs@example.com", "te~st@example.com"},
			bad:    []string{"2962", "Joe <joe@example.com>", "joe@exämple.com"},
		},
		{
			format: "hostname",
			good:   []any{"www.example.com", "host-name.example", "a"},
			bad:    []string{"not_a_valid_host_name", strings.Repeat("a", 64) + ".com", "ä.com", ""},
		},
		{
			format: "host-name",
			good:   []any{"www.example.com"},
			bad:    []string{"a..b"},
		},
		{
			format: "ipv4",
			good:   []any{"192.168.0.1"},
			bad:    []string{"127.0.0.0.1", "256.256.256.256", "::1"},
		},
		{
			format: "ip-address",
			good:   []any{"10.0.0.1"},
			bad:    []string{"0x7f000001"},
		},
		{
			format: "ipv6",
			good:   []any{"::1", "fe80::1"},
			bad:    []string{"12345::", "1.2.3.4", "fe80::1%eth0"},
		},
		{
			format: "uri",
			good:   []any{"http://foo.bar/?baz=qux#quux", "urn:isbn:0451450523"},
			bad:    []string{"//foo.bar/?baz=qux#quux", "abc", "http:// shouldfail.com"},
		},
		{
			format: "uri-reference",
			good:   []any{"/abc", "#fragment", "http://example.com/a"},
			bad:    []string{`\\WINDOWS\fileshare`, "a b"},
		},
		{
			format: "regex",
			good:   []any{"([abc])+\\s+$"},
			bad:    []string{"^(abc]"},
		},
		{
			format: "uuid",
			good:   []any{"2eb8aa08-aa98-11ea-b4aa-73b441d16380", "2EB8AA08-AA98-11EA-B4AA-73B441D16380"},
			bad:    []string{"2eb8aa08aa9811eab4aa73b441d16380", "urn:uuid:2eb8aa08-aa98-11ea-b4aa-73b441d16380", "2eb8aa08-aa98-11ea-b4aa-73b441d1638"},
		},
		{
			format: "json-pointer",
			good:   []any{"", "/foo/0", "/a~1b", "/m~0n"},
			bad:    []string{"foo", "/foo/~", "/foo/~2"},
		},
	}

	ctx := context.Background()
	opts := &types.ValidateOpts{ValidateFormat: true}
	for _, test := range tests {
		t.Run(test.format, func(t *testing.T) {
			s, err := types.SchemaFromJSON("", map[string]any{"format": test.format})
			require.NoError(t, err)

			for _, v := range test.good {
				require.NoError(t, s.ValidateWithOpts(ctx, v, opts), "%v", v)
			}
			for _, v := range test.bad {
				err := s.ValidateWithOpts(ctx, v, opts)
				require.Error(t, err, "%q", v)
				require.True(t, types.IsValidationError(err), "%q: %v", v, err)
			}
		})
	}
}

func TestFormatsOff(t *testing.T) {
	s, err := types.SchemaFromJSON("", map[string]any{"format": "ipv4"})
	require.NoError(t, err)
	require.NoError(t, s.Validate(context.Background(), "not an address"))
}

func TestUnknownFormat(t *testing.T) {
	s, err := types.SchemaFromJSON("", map[string]any{"format": "no-such-format"})
	require.NoError(t, err)
	require.NoError(t, s.ValidateWithOpts(context.Background(), "anything", &types.ValidateOpts{ValidateFormat: true}))
}

func TestRegisterFormatValidator(t *testing.T) {
	format.RegisterFormatValidator("even-length", func(instance any, state *types.ValidationState) error {
		if s, ok := instance.(string); ok && len(s)%2 != 0 {
			return &types.ValidationError{Message: "odd length"}
		}
		return nil
	})

	s, err := types.SchemaFromJSON("", map[string]any{"format": "even-length"})
	require.NoError(t, err)

	opts := &types.ValidateOpts{ValidateFormat: true}
	require.NoError(t, s.ValidateWithOpts(context.Background(), "ab", opts))

	err = s.ValidateWithOpts(context.Background(), "abc", opts)
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "format", ve.Keyword)
	require.Equal(t, "odd length", ve.Message)
}
