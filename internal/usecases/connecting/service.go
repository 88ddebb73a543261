package connecting

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

// AccountVerifier confere o token na Meta antes de guardar a conexão
type AccountVerifier interface {
	ValidateToken(ctx context.Context, token string) error
	ListAdAccounts(ctx context.Context, token string) ([]domain.AdAccount, error)
}

type Connector interface {
	Create(ctx context.Context, userID string, request *domain.CreateConnectionRequest) (*domain.Connection, error)
	List(ctx context.Context, userID string) ([]*domain.Connection, error)
	Delete(ctx context.Context, userID, accountID string) error
	GetAccessToken(ctx context.Context, userID, accountID string) (string, error)
	GetLatestAccessToken(ctx context.Context, userID string) (string, error)
}

type Service struct {
	connectionRepository repository.ConnectionRepository
	verifier             AccountVerifier
	secretKey            string
}

func NewService(connectionRepository repository.ConnectionRepository, verifier AccountVerifier, cfg *config.Config) Connector {
	return &Service{
		connectionRepository: connectionRepository,
		verifier:             verifier,
		secretKey:            cfg.SecretKey,
	}
}

// Create valida o token na Meta, confere o acesso à conta e grava o token cifrado.
// Erros da Meta voltam sem embrulho para o handler responder com o kind correto.
func (s *Service) Create(ctx context.Context, userID string, request *domain.CreateConnectionRequest) (*domain.Connection, error) {
	if userID == "" {
		return nil, NewConnectionError(ErrUserIDRequired, apiErrors.ErrInvalidToken, "Usuário não identificado")
	}

	accountID := domain.NormalizeAccountID(request.AccountID)
	if accountID == "" {
		return nil, NewConnectionError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "account_id é obrigatório")
	}

	token := strings.TrimSpace(request.AccessToken)
	if token == "" {
		return nil, NewConnectionErrorWithAccount(ErrAccessTokenRequired, apiErrors.ErrMissingRequiredData, accountID, "access_token é obrigatório")
	}

	fields := logrus.Fields{
		"user_id":    userID,
		"account_id": accountID,
	}

	if err := s.verifier.ValidateToken(ctx, token); err != nil {
		logrus.WithFields(fields).WithField("error", err.Error()).Warn("connecting: token validation failed")
		return nil, err
	}

	accounts, err := s.verifier.ListAdAccounts(ctx, token)
	if err != nil {
		logrus.WithFields(fields).WithField("error", err.Error()).Error("connecting: failed to list ad accounts")
		return nil, err
	}

	account, found := findAccount(accounts, accountID)
	if !found {
		logrus.WithFields(fields).WithField("visible_accounts", len(accounts)).Warn("connecting: account not visible to token")
		return nil, NewConnectionErrorWithAccount(ErrAccountNotAllowed, apiErrors.ErrAccountNotAllowed, accountID, "O token informado não tem acesso a esta conta")
	}

	name := strings.TrimSpace(request.AccountName)
	if name == "" {
		name = account.Name
	}

	encrypted, err := utils.EncryptSecret(token, s.secretKey)
	if err != nil {
		logrus.WithFields(fields).WithField("error", err.Error()).Error("connecting: failed to encrypt token")
		return nil, NewConnectionErrorWithAccount(ErrEncryptToken, apiErrors.ErrInternalServer, accountID, "Falha ao proteger o token")
	}

	saved, err := s.connectionRepository.Save(ctx, &domain.Connection{
		UserID:      userID,
		AccountID:   accountID,
		AccountName: name,
		AccessToken: encrypted,
	})
	if err != nil {
		return nil, NewConnectionErrorWithAccount(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao salvar conexão")
	}

	logrus.WithFields(fields).Info("connecting: account connected")

	saved.AccessToken = ""
	return saved, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*domain.Connection, error) {
	if userID == "" {
		return nil, NewConnectionError(ErrUserIDRequired, apiErrors.ErrInvalidToken, "Usuário não identificado")
	}

	connections, err := s.connectionRepository.ListByUser(ctx, userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("connecting: failed to list connections")
		return nil, NewConnectionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar conexões")
	}

	for _, connection := range connections {
		connection.AccessToken = ""
	}

	return connections, nil
}

func (s *Service) Delete(ctx context.Context, userID, accountID string) error {
	accountID = domain.NormalizeAccountID(accountID)
	if accountID == "" {
		return NewConnectionError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "account_id é obrigatório")
	}

	deleted, err := s.connectionRepository.Delete(ctx, userID, accountID)
	if err != nil {
		return NewConnectionErrorWithAccount(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao remover conexão")
	}

	if !deleted {
		return NewConnectionErrorWithAccount(ErrConnectionNotFound, apiErrors.ErrConnectionNotFound, accountID, "Conta não conectada")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"account_id": accountID,
	}).Info("connecting: account disconnected")

	return nil
}

// GetAccessToken devolve o token decifrado da conexão do usuário com a conta
func (s *Service) GetAccessToken(ctx context.Context, userID, accountID string) (string, error) {
	accountID = domain.NormalizeAccountID(accountID)
	if accountID == "" {
		return "", NewConnectionError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "account_id é obrigatório")
	}

	connection, err := s.connectionRepository.GetByUserAndAccount(ctx, userID, accountID)
	if err != nil {
		return "", NewConnectionErrorWithAccount(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao buscar conexão")
	}

	return s.decrypt(connection, accountID)
}

// GetLatestAccessToken usa a conexão mais recente, para listar as contas do seletor
func (s *Service) GetLatestAccessToken(ctx context.Context, userID string) (string, error) {
	connection, err := s.connectionRepository.GetLatestByUser(ctx, userID)
	if err != nil {
		return "", NewConnectionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar conexão")
	}

	return s.decrypt(connection, "")
}

func (s *Service) decrypt(connection *domain.Connection, accountID string) (string, error) {
	if connection == nil {
		return "", NewConnectionErrorWithAccount(ErrConnectionNotFound, apiErrors.ErrConnectionNotFound, accountID, "Conta não conectada")
	}

	token, err := utils.DecryptSecret(connection.AccessToken, s.secretKey)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"connection_id": connection.ID,
			"error":         err.Error(),
		}).Error("connecting: failed to decrypt token")
		return "", NewConnectionErrorWithAccount(ErrDecryptToken, apiErrors.ErrInternalServer, connection.AccountID, "Falha ao ler o token salvo")
	}

	return token, nil
}

func findAccount(accounts []domain.AdAccount, accountID string) (domain.AdAccount, bool) {
	for _, account := range accounts {
		if domain.NormalizeAccountID(account.ID) == accountID {
			return account, true
		}
	}
	return domain.AdAccount{}, false
}
