package service

import (
	"errors"

	"listen/config"
	"listen/internal/auth"
	"listen/internal/domain"
	"listen/internal/models"
	"listen/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StoreAuthService signs storefront clients in. Tokens it issues carry the
// CLIENT role, so they can reach the storefront surface only.
type StoreAuthService struct {
	cfg        *config.Config
	clientRepo *repository.ClientRepository
}

func NewStoreAuthService(cfg *config.Config, clientRepo *repository.ClientRepository) *StoreAuthService {
	return &StoreAuthService{cfg: cfg, clientRepo: clientRepo}
}

func (s *StoreAuthService) Register(name, email, password string) (*models.Client, string, error) {
	_, err := s.clientRepo.GetByEmail(email)
	if err == nil {
		return nil, "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	client := &models.Client{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, "", err
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, client.ID, client.Email, domain.RoleClient)
	if err != nil {
		return nil, "", err
	}
	return client, access, nil
}

func (s *StoreAuthService) Login(email, password string) (*models.Client, string, error) {
	client, err := s.clientRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if client.PasswordHash == "" {
		return nil, "", ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, client.ID, client.Email, domain.RoleClient)
	if err != nil {
		return nil, "", err
	}
	return client, access, nil
}

// LoginWithGoogle finds or creates a client for a verified Google identity.
// An existing record with the same email gets the Google ID linked.
func (s *StoreAuthService) LoginWithGoogle(googleID, email, name string) (*models.Client, string, error) {
	client, err := s.clientRepo.GetByGoogleID(googleID)
	if err == nil {
		access, err := auth.GenerateAccessToken(&s.cfg.JWT, client.ID, client.Email, domain.RoleClient)
		return client, access, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	existing, err := s.clientRepo.GetByEmail(email)
	if err == nil {
		gid := googleID
		existing.GoogleID = &gid
		if err := s.clientRepo.Update(existing); err != nil {
			return nil, "", err
		}
		access, err := auth.GenerateAccessToken(&s.cfg.JWT, existing.ID, existing.Email, domain.RoleClient)
		return existing, access, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	gid := googleID
	if name == "" {
		name = email
	}
	client = &models.Client{
		Name:     name,
		Email:    email,
		GoogleID: &gid,
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, "", err
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, client.ID, client.Email, domain.RoleClient)
	return client, access, err
}
