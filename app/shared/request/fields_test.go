package request

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/competitions/app/shared/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	form := url.Values{"score": {"12"}, "name": {"Spring Cup"}}

	tests := []struct {
		name        string
		contentType string
		body        string
		want        map[string]string
		wantErr     error
	}{
		{
			name:        "json with numbers and strings",
			contentType: "application/json; charset=utf-8",
			body:        `{"id": 3, "score": "abc", "points": 1.5, "flag": true, "empty": null}`,
			want:        map[string]string{"id": "3", "score": "abc", "points": "1.5", "flag": "true", "empty": ""},
		},
		{
			name:        "form encoded",
			contentType: "application/x-www-form-urlencoded",
			body:        form.Encode(),
			want:        map[string]string{"score": "12", "name": "Spring Cup"},
		},
		{
			name:        "empty json body",
			contentType: "application/json",
			body:        "",
			want:        map[string]string{},
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"id": `,
			wantErr:     apperr.ErrValidation,
		},
		{
			name:        "json array",
			contentType: "application/json",
			body:        `[1,2]`,
			wantErr:     apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/competitions/add", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			got, err := Fields(httptest.NewRecorder(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
