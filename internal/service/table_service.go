package service

import (
	"context"
	"fmt"
	"strings"

	"tableside/internal/domain"
)

type TableService struct {
	repo      TableRepository
	qrEncoder QRGenerator
}

func NewTableService(repo TableRepository, qr QRGenerator) *TableService {
	return &TableService{repo: repo, qrEncoder: qr}
}

func (s *TableService) Create(ctx context.Context, name string) (*domain.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		verr := domain.NewValidationError()
		verr.Add("name", "must not be empty")
		return nil, verr
	}

	table := &domain.Table{Name: name}
	if err := s.repo.CreateTable(ctx, table); err != nil {
		return nil, err
	}
	table.QRCode = fmt.Sprintf("/api/tables/%d/qrcode", table.ID)
	return table, nil
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tables {
		tables[i].QRCode = fmt.Sprintf("/api/tables/%d/qrcode", tables[i].ID)
	}
	return tables, nil
}

func (s *TableService) Get(ctx context.Context, id int) (*domain.Table, error) {
	return s.repo.GetTable(ctx, id)
}

func (s *TableService) Rename(ctx context.Context, id int, name string) (*domain.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		verr := domain.NewValidationError()
		verr.Add("name", "must not be empty")
		return nil, verr
	}
	if err := s.repo.RenameTable(ctx, id, name); err != nil {
		return nil, err
	}
	return s.repo.GetTable(ctx, id)
}

func (s *TableService) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteTable(ctx, id)
}

// QRCode returns the table's stored QR PNG, generating and persisting it on
// first use.
func (s *TableService) QRCode(ctx context.Context, id int) ([]byte, error) {
	qr, err := s.repo.GetTableQRCode(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		qr, err = s.qrEncoder.Generate(id)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SaveTableQRCode(ctx, id, qr); err != nil {
			return nil, err
		}
	}
	return qr, nil
}

var _ TableServiceInterface = (*TableService)(nil)
