package connecting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	connectingmocks "github.com/vfg2006/ads-dashboard-api/internal/usecases/connecting/mocks"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

const secretKey = "chave-de-teste"

func newTestService(t *testing.T) (Connector, *mocks.MockConnectionRepository, *connectingmocks.MockAccountVerifier) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockConnectionRepository(ctrl)
	verifier := connectingmocks.NewMockAccountVerifier(ctrl)

	return NewService(repo, verifier, &config.Config{SecretKey: secretKey}), repo, verifier
}

func assertConnectionError(t *testing.T, err error, target error, code string) {
	t.Helper()

	require.ErrorIs(t, err, target)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, code, connErr.Code)
}

func TestService_Create(t *testing.T) {
	visibleAccounts := []domain.AdAccount{
		{ID: "act_111", Name: "Loja Centro"},
		{ID: "act_222", Name: "Loja Norte"},
	}

	tests := []struct {
		name     string
		userID   string
		request  *domain.CreateConnectionRequest
		setup    func(repo *mocks.MockConnectionRepository, verifier *connectingmocks.MockAccountVerifier)
		validate func(t *testing.T, conn *domain.Connection, err error)
	}{
		{
			name:    "Conta visível - grava token cifrado e usa o nome da Meta",
			userID:  "user-1",
			request: &domain.CreateConnectionRequest{AccountID: "222", AccessToken: "  EAAB-token  "},
			setup: func(repo *mocks.MockConnectionRepository, verifier *connectingmocks.MockAccountVerifier) {
				verifier.EXPECT().ValidateToken(gomock.Any(), "EAAB-token").Return(nil)
				verifier.EXPECT().ListAdAccounts(gomock.Any(), "EAAB-token").Return(visibleAccounts, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, conn *domain.Connection) (*domain.Connection, error) {
						assert.Equal(t, "user-1", conn.UserID)
						assert.Equal(t, "act_222", conn.AccountID)
						assert.Equal(t, "Loja Norte", conn.AccountName)
						assert.NotEqual(t, "EAAB-token", conn.AccessToken)

						plaintext, err := utils.DecryptSecret(conn.AccessToken, secretKey)
						assert.NoError(t, err)
						assert.Equal(t, "EAAB-token", plaintext)

						saved := *conn
						saved.ID = "conn-1"
						saved.CreatedAt = time.Now()
						return &saved, nil
					})
			},
			validate: func(t *testing.T, conn *domain.Connection, err error) {
				require.NoError(t, err)
				assert.Equal(t, "conn-1", conn.ID)
				assert.Empty(t, conn.AccessToken, "o token não volta para o cliente")
			},
		},
		{
			name:    "Nome informado pelo usuário é mantido",
			userID:  "user-1",
			request: &domain.CreateConnectionRequest{AccountID: "act_111", AccountName: "Minha loja", AccessToken: "EAAB-token"},
			setup: func(repo *mocks.MockConnectionRepository, verifier *connectingmocks.MockAccountVerifier) {
				verifier.EXPECT().ValidateToken(gomock.Any(), gomock.Any()).Return(nil)
				verifier.EXPECT().ListAdAccounts(gomock.Any(), gomock.Any()).Return(visibleAccounts, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, conn *domain.Connection) (*domain.Connection, error) {
						assert.Equal(t, "Minha loja", conn.AccountName)
						return conn, nil
					})
			},
			validate: func(t *testing.T, conn *domain.Connection, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Minha loja", conn.AccountName)
			},
		},
		{
			name:    "Conta fora da lista do token - acesso negado",
			userID:  "user-1",
			request: &domain.CreateConnectionRequest{AccountID: "333", AccessToken: "EAAB-token"},
			setup: func(repo *mocks.MockConnectionRepository, verifier *connectingmocks.MockAccountVerifier) {
				verifier.EXPECT().ValidateToken(gomock.Any(), gomock.Any()).Return(nil)
				verifier.EXPECT().ListAdAccounts(gomock.Any(), gomock.Any()).Return(visibleAccounts, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			validate: func(t *testing.T, conn *domain.Connection, err error) {
				assert.Nil(t, conn)
				assertConnectionError(t, err, ErrAccountNotAllowed, apiErrors.ErrAccountNotAllowed)
			},
		},
		{
			name:    "Token recusado pela Meta - erro volta sem embrulho",
			userID:  "user-1",
			request: &domain.CreateConnectionRequest{AccountID: "111", AccessToken: "EAAB-expirado"},
			setup: func(repo *mocks.MockConnectionRepository, verifier *connectingmocks.MockAccountVerifier) {
				verifier.EXPECT().ValidateToken(gomock.Any(), gomock.Any()).
					Return(&metadomain.RequestError{Code: 190, TokenInvalid: true})
				verifier.EXPECT().ListAdAccounts(gomock.Any(), gomock.Any()).Times(0)
			},
			validate: func(t *testing.T, conn *domain.Connection, err error) {
				var reqErr *metadomain.RequestError
				require.ErrorAs(t, err, &reqErr)
				assert.True(t, reqErr.TokenInvalid)
			},
		},
		{
			name:    "Falha ao salvar - erro de banco",
			userID:  "user-1",
			request: &domain.CreateConnectionRequest{AccountID: "111", AccessToken: "EAAB-token"},
			setup: func(repo *mocks.MockConnectionRepository, verifier *connectingmocks.MockAccountVerifier) {
				verifier.EXPECT().ValidateToken(gomock.Any(), gomock.Any()).Return(nil)
				verifier.EXPECT().ListAdAccounts(gomock.Any(), gomock.Any()).Return(visibleAccounts, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			validate: func(t *testing.T, conn *domain.Connection, err error) {
				assertConnectionError(t, err, ErrDatabaseOperation, apiErrors.ErrDatabaseOperation)
			},
		},
		{
			name:    "Sem usuário",
			request: &domain.CreateConnectionRequest{AccountID: "111", AccessToken: "EAAB-token"},
			validate: func(t *testing.T, conn *domain.Connection, err error) {
				assertConnectionError(t, err, ErrUserIDRequired, apiErrors.ErrInvalidToken)
			},
		},
		{
			name:    "Sem conta",
			userID:  "user-1",
			request: &domain.CreateConnectionRequest{AccessToken: "EAAB-token"},
			validate: func(t *testing.T, conn *domain.Connection, err error) {
				assertConnectionError(t, err, ErrAccountIDRequired, apiErrors.ErrMissingRequiredData)
			},
		},
		{
			name:    "Token em branco",
			userID:  "user-1",
			request: &domain.CreateConnectionRequest{AccountID: "111", AccessToken: "   "},
			validate: func(t *testing.T, conn *domain.Connection, err error) {
				assertConnectionError(t, err, ErrAccessTokenRequired, apiErrors.ErrMissingRequiredData)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, verifier := newTestService(t)
			if tt.setup != nil {
				tt.setup(repo, verifier)
			}

			conn, err := service.Create(context.Background(), tt.userID, tt.request)
			tt.validate(t, conn, err)
		})
	}
}

func TestService_List_ClearsTokens(t *testing.T) {
	service, repo, _ := newTestService(t)

	repo.EXPECT().ListByUser(gomock.Any(), "user-1").Return([]*domain.Connection{
		{ID: "1", AccountID: "act_1", AccessToken: "cifrado-1"},
		{ID: "2", AccountID: "act_2", AccessToken: "cifrado-2"},
	}, nil)

	connections, err := service.List(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, connections, 2)
	for _, conn := range connections {
		assert.Empty(t, conn.AccessToken)
	}
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		deleted bool
		repoErr error
		wantErr error
	}{
		{name: "Conexão removida", deleted: true},
		{name: "Conexão inexistente", deleted: false, wantErr: ErrConnectionNotFound},
		{name: "Falha no banco", repoErr: errors.New("timeout"), wantErr: ErrDatabaseOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newTestService(t)

			repo.EXPECT().Delete(gomock.Any(), "user-1", "act_9").Return(tt.deleted, tt.repoErr)

			err := service.Delete(context.Background(), "user-1", "9")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_GetAccessToken(t *testing.T) {
	encrypted, err := utils.EncryptSecret("EAAB-token", secretKey)
	require.NoError(t, err)

	t.Run("Token decifrado da conexão", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		repo.EXPECT().GetByUserAndAccount(gomock.Any(), "user-1", "act_1").
			Return(&domain.Connection{ID: "c", AccountID: "act_1", AccessToken: encrypted}, nil)

		token, err := service.GetAccessToken(context.Background(), "user-1", "1")
		require.NoError(t, err)
		assert.Equal(t, "EAAB-token", token)
	})

	t.Run("Conta não conectada", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		repo.EXPECT().GetByUserAndAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := service.GetAccessToken(context.Background(), "user-1", "act_1")
		assertConnectionError(t, err, ErrConnectionNotFound, apiErrors.ErrConnectionNotFound)
	})

	t.Run("Token cifrado com outra chave", func(t *testing.T) {
		other, err := utils.EncryptSecret("EAAB-token", "outra-chave")
		require.NoError(t, err)

		service, repo, _ := newTestService(t)
		repo.EXPECT().GetByUserAndAccount(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.Connection{AccountID: "act_1", AccessToken: other}, nil)

		_, err = service.GetAccessToken(context.Background(), "user-1", "act_1")
		assertConnectionError(t, err, ErrDecryptToken, apiErrors.ErrInternalServer)
	})

	t.Run("Conexão mais recente", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		repo.EXPECT().GetLatestByUser(gomock.Any(), "user-1").
			Return(&domain.Connection{AccountID: "act_1", AccessToken: encrypted}, nil)

		token, err := service.GetLatestAccessToken(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "EAAB-token", token)
	})

	t.Run("Usuário sem conexões", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		repo.EXPECT().GetLatestByUser(gomock.Any(), "user-1").Return(nil, nil)

		_, err := service.GetLatestAccessToken(context.Background(), "user-1")
		assert.ErrorIs(t, err, ErrConnectionNotFound)
	})
}
