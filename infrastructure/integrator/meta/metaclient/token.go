package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
)

type debugTokenResponse struct {
	Data metadomain.TokenInfo `json:"data"`
}

// DebugToken consulta /debug_token com o app token (app_id|app_secret).
// Sem app configurado, cai para uma consulta simples em /me.
func (c *MetaClient) DebugToken(ctx context.Context, token string) (*metadomain.TokenInfo, error) {
	if token == "" {
		return nil, fmt.Errorf("token de acesso não pode ser vazio")
	}

	if c.AppID == "" || c.AppSecret == "" {
		return c.checkTokenWithMe(ctx, token)
	}

	params := url.Values{}
	params.Set("input_token", token)

	// o app token substitui o token do usuário nessa chamada
	resp, err := c.Get(ctx, "debug_token", params, c.AppID+"|"+c.AppSecret)
	if err != nil {
		return nil, err
	}

	var response debugTokenResponse
	if err := jsonAPI.Unmarshal(resp.Body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do debug_token: %w", err)
	}

	info := response.Data
	if info.ExpiresAt > 0 {
		logrus.WithFields(logrus.Fields{
			"user_id":    info.UserID,
			"is_valid":   info.IsValid,
			"expires_in": FormatDuration(info.ExpiresAt - c.now().Unix()),
		}).Debug("meta: token inspected")
	}

	return &info, nil
}

func (c *MetaClient) checkTokenWithMe(ctx context.Context, token string) (*metadomain.TokenInfo, error) {
	params := url.Values{}
	params.Set("fields", "id,name")

	resp, err := c.Get(ctx, "me", params, token)
	if err != nil {
		return nil, err
	}

	var me struct {
		ID string `json:"id"`
	}
	if err := jsonAPI.Unmarshal(resp.Body, &me); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do /me: %w", err)
	}

	return &metadomain.TokenInfo{UserID: me.ID, IsValid: me.ID != ""}, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}
