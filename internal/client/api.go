package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/proposal-builder/internal/dto"
	"github.com/ignatzorin/proposal-builder/internal/models"
	"github.com/ignatzorin/proposal-builder/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-builder/internal/service"
)

// API — HTTP клиент серверного API предложений.
// Потокобезопасность обеспечивает Store, сам клиент состояния не хранит.
type API struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewAPI создаёт клиент для заданного адреса сервера.
func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken задаёт access токен для последующих запросов.
func (a *API) SetToken(token string) {
	a.token = token
}

// LoginResponse — ответ сервера на вход.
type LoginResponse struct {
	User   *models.User       `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

// Login выполняет вход и запоминает полученный access токен.
func (a *API) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := a.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Tokens != nil {
		a.token = resp.Tokens.AccessToken
	}
	return &resp, nil
}

// ListProposals загружает все предложения пользователя.
func (a *API) ListProposals(ctx context.Context) ([]models.Proposal, error) {
	var proposals []models.Proposal
	if err := a.do(ctx, http.MethodGet, "/api/proposals", nil, &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

// GetProposal загружает одно предложение по идентификатору.
func (a *API) GetProposal(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := a.do(ctx, http.MethodGet, "/api/proposals/"+id.String(), nil, &proposal); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// CreateProposal создаёт новое предложение.
func (a *API) CreateProposal(ctx context.Context, req dto.CreateProposalRequest) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := a.do(ctx, http.MethodPost, "/api/proposals", req, &proposal); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// UpdateProposal отправляет частичное обновление предложения.
func (a *API) UpdateProposal(ctx context.Context, id uuid.UUID, req dto.UpdateProposalRequest) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := a.do(ctx, http.MethodPut, "/api/proposals/"+id.String(), req, &proposal); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// UpdateSection заменяет один раздел предложения.
func (a *API) UpdateSection(ctx context.Context, proposalID, sectionID uuid.UUID, req dto.UpdateSectionRequest) (*models.Proposal, error) {
	var proposal models.Proposal
	path := fmt.Sprintf("/api/proposals/%s/sections/%s", proposalID, sectionID)
	if err := a.do(ctx, http.MethodPut, path, req, &proposal); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// UpdateElement заменяет один блок внутри раздела.
func (a *API) UpdateElement(ctx context.Context, proposalID, sectionID, elementID uuid.UUID, req dto.UpdateElementRequest) (*models.Proposal, error) {
	var proposal models.Proposal
	path := fmt.Sprintf("/api/proposals/%s/sections/%s/elements/%s", proposalID, sectionID, elementID)
	if err := a.do(ctx, http.MethodPut, path, req, &proposal); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// DeleteProposal удаляет предложение. Повторное удаление не считается ошибкой.
func (a *API) DeleteProposal(ctx context.Context, id uuid.UUID) error {
	return a.do(ctx, http.MethodDelete, "/api/proposals/"+id.String(), nil, nil)
}

// do выполняет запрос и разбирает ответ либо в out, либо в ошибку API.
func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: не удалось сериализовать запрос: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: не удалось создать запрос: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: запрос не выполнен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: не удалось разобрать ответ: %w", err)
	}
	return nil
}

// decodeError превращает JSON ошибку сервера в AppError с кодом по статусу.
func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		payload.Error = http.StatusText(resp.StatusCode)
	}
	return apperror.FromStatus(resp.StatusCode, payload.Error)
}
