package idtoken

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

type IAuthVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*UserInfo, error)
}

// Verifier 把ID token丟給identity provider的tokeninfo endpoint驗證
type Verifier struct {
	TokenInfoURL string
	Audience     string // 為空則不檢查aud
}

// UserInfo 存放provider回傳的用戶資訊
type UserInfo struct {
	SubjectID string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Picture   string `json:"picture"`
}

func NewVerifier(tokenInfoURL, audience string) *Verifier {
	return &Verifier{
		TokenInfoURL: tokenInfoURL,
		Audience:     audience,
	}
}

var _ IAuthVerifier = (*Verifier)(nil)

// VerifyIDToken 驗證從前端傳來的ID token
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*UserInfo, error) {
	reqURL := v.TokenInfoURL + "?id_token=" + url.QueryEscape(idToken)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending verification request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("invalid token")
	}

	var tokenInfo struct {
		Aud string `json:"aud"`
		UserInfo
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if v.Audience != "" && tokenInfo.Aud != v.Audience {
		return nil, errors.New("token was not issued for this application")
	}

	if tokenInfo.SubjectID == "" {
		return nil, errors.New("token info missing subject")
	}

	return &tokenInfo.UserInfo, nil
}
