package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/resale-ledger-api/infrastructure/repository"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/pricing"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/resale-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/resale-ledger-api/pkg/csvexport"
	"github.com/vfg2006/resale-ledger-api/pkg/log"
	"github.com/vfg2006/resale-ledger-api/pkg/pdfreport"
	"github.com/vfg2006/resale-ledger-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	csvContentType = "text/csv; charset=utf-8"
	pdfContentType = "application/pdf"
)

type Ledger interface {
	AddSale(ctx context.Context, req *domain.CreateSaleRequest) (*domain.Sale, error)
	AddInventoryItem(ctx context.Context, req *domain.CreateInventoryItemRequest) (*domain.InventoryItem, error)
	AddExpense(ctx context.Context, req *domain.CreateExpenseRequest) (*domain.Expense, error)
	MarkInventorySold(ctx context.Context, inventoryID string, req *domain.MarkSoldRequest) (*domain.Sale, error)
	DeleteSale(ctx context.Context, id string) error
	DeleteInventoryItem(ctx context.Context, id string) error
	DeleteExpense(ctx context.Context, id string) error
	Load(ctx context.Context) (*domain.Snapshot, error)
	Dashboard(ctx context.Context, filters domain.Filters) (*domain.Dashboard, error)
	Export(ctx context.Context, collection string, filters domain.Filters) (*domain.Export, error)
	Report(ctx context.Context, filters domain.Filters) (*domain.Export, error)
}

type Service struct {
	sales     repository.SaleRepository
	inventory repository.InventoryRepository
	expenses  repository.ExpenseRepository
	now       func() time.Time
}

func NewService(
	sales repository.SaleRepository,
	inventory repository.InventoryRepository,
	expenses repository.ExpenseRepository,
) Ledger {
	return &Service{
		sales:     sales,
		inventory: inventory,
		expenses:  expenses,
		now:       time.Now,
	}
}

func (s *Service) AddSale(ctx context.Context, req *domain.CreateSaleRequest) (*domain.Sale, error) {
	itemName := strings.TrimSpace(req.ItemName)
	if itemName == "" {
		return nil, NewLedgerError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome do item é obrigatório")
	}

	platform, err := parsePlatform(req.Platform)
	if err != nil {
		return nil, err
	}

	saleDate, err := s.parseDateOrToday(req.SaleDate)
	if err != nil {
		return nil, err
	}

	price, err := pricing.ParseSalePrice(req.SalePrice.String())
	if err != nil {
		return nil, NewLedgerError(ErrInvalidSalePrice, apiErrors.ErrInvalidFormat, fmt.Sprintf("Preço de venda inválido: %q", req.SalePrice))
	}

	itemCost, err := parseCost(req.ItemCost, "Custo do item")
	if err != nil {
		return nil, err
	}

	shippingCost, err := parseCost(req.ShippingCost, "Frete")
	if err != nil {
		return nil, err
	}

	grossTotal, err := parseOptionalAmount(req.GrossTotal, "Total bruto")
	if err != nil {
		return nil, err
	}

	actualReceived, err := parseOptionalAmount(req.ActualReceived, "Valor recebido")
	if err != nil {
		return nil, err
	}

	breakdown := pricing.Calculate(pricing.SaleInput{
		Platform:       platform,
		SalePrice:      price,
		ItemCost:       itemCost,
		ShippingCost:   shippingCost,
		GrossTotal:     grossTotal,
		ActualReceived: actualReceived,
	})

	if breakdown.GrossTotalDefaulted {
		log.ForContext(ctx).WithFields(log.Fields{
			"item_name":  itemName,
			"sale_price": price,
		}).Warn("Total bruto não informado no override do eBay, usando o preço de venda")
	}

	sale := &domain.Sale{
		ItemName:       itemName,
		Platform:       platform,
		SaleDate:       saleDate,
		SalePrice:      price,
		PlatformFee:    breakdown.Fee,
		ItemCost:       itemCost,
		ShippingCost:   shippingCost,
		Profit:         breakdown.Profit,
		GrossTotal:     grossTotal,
		ActualReceived: actualReceived,
		Status:         domain.SaleStatusSold,
	}

	created, err := s.sales.Create(ctx, sale)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao gravar venda")
		return nil, NewLedgerError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return created, nil
}

func (s *Service) AddInventoryItem(ctx context.Context, req *domain.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	itemName := strings.TrimSpace(req.ItemName)
	if itemName == "" {
		return nil, NewLedgerError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome do item é obrigatório")
	}

	itemCost, err := parseCost(req.ItemCost, "Custo do item")
	if err != nil {
		return nil, err
	}

	platforms, err := parsePlatformSet(req.Platforms)
	if err != nil {
		return nil, err
	}

	var dateAdded *string
	if date := strings.TrimSpace(req.DateAdded); date != "" {
		if err := validateDate(date); err != nil {
			return nil, err
		}
		dateAdded = &date
	}

	item := &domain.InventoryItem{
		ItemName:  itemName,
		ItemCost:  itemCost,
		Platforms: platforms,
		DateAdded: dateAdded,
	}

	created, err := s.inventory.Create(ctx, item)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao gravar item de estoque")
		return nil, NewLedgerError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return created, nil
}

func (s *Service) AddExpense(ctx context.Context, req *domain.CreateExpenseRequest) (*domain.Expense, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewLedgerError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome da despesa é obrigatório")
	}

	if strings.TrimSpace(req.Amount.String()) == "" {
		return nil, NewLedgerError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Valor da despesa é obrigatório")
	}

	amount, err := parseCost(req.Amount, "Valor da despesa")
	if err != nil {
		return nil, err
	}

	dateAdded, err := s.parseDateOrToday(req.DateAdded)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		Name:      name,
		Amount:    amount,
		DateAdded: dateAdded,
	}

	created, err := s.expenses.Create(ctx, expense)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao gravar despesa")
		return nil, NewLedgerError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return created, nil
}

// MarkInventorySold converte o item de estoque em venda. A venda é gravada antes e o item
// só é removido depois. Se a remoção falhar, a venda criada volta junto com um erro
// ErrPartialMarkSold para que o dono possa remover o item manualmente.
func (s *Service) MarkInventorySold(ctx context.Context, inventoryID string, req *domain.MarkSoldRequest) (*domain.Sale, error) {
	if strings.TrimSpace(inventoryID) == "" {
		return nil, NewLedgerError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "ID do item é obrigatório")
	}

	platform, err := parsePlatform(req.Platform)
	if err != nil {
		return nil, err
	}

	price, err := pricing.ParseSalePrice(req.SalePrice.String())
	if err != nil {
		return nil, NewRecordError(ErrInvalidSalePrice, apiErrors.ErrInvalidFormat, inventoryID, fmt.Sprintf("Preço de venda inválido: %q", req.SalePrice))
	}

	saleDate, err := s.parseDateOrToday(req.SaleDate)
	if err != nil {
		return nil, err
	}

	item, err := s.inventory.GetByID(ctx, inventoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewRecordError(ErrRecordNotFound, apiErrors.ErrRecordNotFound, inventoryID, "Item de estoque não encontrado")
		}
		log.ForContext(ctx).WithError(err).WithField("inventory_id", inventoryID).Error("Erro ao buscar item de estoque")
		return nil, NewRecordError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, inventoryID, err.Error())
	}

	breakdown := pricing.Calculate(pricing.SaleInput{
		Platform:  platform,
		SalePrice: price,
		ItemCost:  item.ItemCost,
	})

	sale := &domain.Sale{
		ItemName:      item.ItemName,
		Platform:      platform,
		SaleDate:      saleDate,
		SalePrice:     price,
		PlatformFee:   breakdown.Fee,
		ItemCost:      item.ItemCost,
		ShippingCost:  0,
		Profit:        breakdown.Profit,
		Status:        domain.SaleStatusSold,
		ConvertedFrom: utils.StringPtr(item.ID),
	}

	created, err := s.sales.Create(ctx, sale)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("inventory_id", item.ID).Error("Erro ao gravar venda do item de estoque")
		return nil, NewRecordError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, item.ID, err.Error())
	}

	if err := s.inventory.Delete(ctx, item.ID); err != nil {
		log.ForContext(ctx).WithError(err).WithFields(log.Fields{
			"reconcile":    true,
			"sale_id":      created.ID,
			"inventory_id": item.ID,
		}).Warn("Venda registrada mas o item de estoque não foi removido, remova o item manualmente")

		return created, &LedgerError{
			Err:       ErrPartialMarkSold,
			Code:      apiErrors.ErrPartialFailure,
			RecordID:  created.ID,
			RelatedID: item.ID,
			Details:   err.Error(),
		}
	}

	return created, nil
}

func (s *Service) DeleteSale(ctx context.Context, id string) error {
	return s.delete(ctx, "venda", id, s.sales.Delete)
}

func (s *Service) DeleteInventoryItem(ctx context.Context, id string) error {
	return s.delete(ctx, "item de estoque", id, s.inventory.Delete)
}

func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	return s.delete(ctx, "despesa", id, s.expenses.Delete)
}

func (s *Service) delete(ctx context.Context, kind, id string, remove func(context.Context, string) error) error {
	if strings.TrimSpace(id) == "" {
		return NewLedgerError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "ID é obrigatório")
	}

	if err := remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewRecordError(ErrRecordNotFound, apiErrors.ErrRecordNotFound, id, fmt.Sprintf("%s não encontrado(a)", kind))
		}
		log.ForContext(ctx).WithError(err).WithField("record_id", id).Errorf("Erro ao remover %s", kind)
		return NewRecordError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	return nil
}

// Load busca as três coleções em paralelo e só retorna quando todas chegaram
func (s *Service) Load(ctx context.Context) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sales, err := s.sales.List(gctx)
		if err != nil {
			return fmt.Errorf("vendas: %w", err)
		}
		snapshot.Sales = sales
		return nil
	})

	g.Go(func() error {
		items, err := s.inventory.List(gctx)
		if err != nil {
			return fmt.Errorf("estoque: %w", err)
		}
		snapshot.Inventory = items
		return nil
	})

	g.Go(func() error {
		expenses, err := s.expenses.List(gctx)
		if err != nil {
			return fmt.Errorf("despesas: %w", err)
		}
		snapshot.Expenses = expenses
		return nil
	})

	if err := g.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao carregar coleções do record store")
		return nil, NewLedgerError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return snapshot, nil
}

func (s *Service) Dashboard(ctx context.Context, filters domain.Filters) (*domain.Dashboard, error) {
	snapshot, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	return reporting.Build(snapshot, filters, s.now()), nil
}

func (s *Service) Export(ctx context.Context, collection string, filters domain.Filters) (*domain.Export, error) {
	if !csvexport.IsCollection(collection) {
		return nil, NewLedgerError(ErrInvalidCollection, apiErrors.ErrInvalidFormat, fmt.Sprintf("Coleção desconhecida: %q", collection))
	}

	dashboard, err := s.Dashboard(ctx, filters)
	if err != nil {
		return nil, err
	}

	content, err := csvexport.Collection(collection, dashboard)
	if err != nil {
		return nil, NewLedgerError(ErrInvalidCollection, apiErrors.ErrInvalidFormat, err.Error())
	}

	return &domain.Export{
		FileName:    csvexport.FileName(collection, filters.Year),
		ContentType: csvContentType,
		Content:     []byte(content),
	}, nil
}

func (s *Service) Report(ctx context.Context, filters domain.Filters) (*domain.Export, error) {
	dashboard, err := s.Dashboard(ctx, filters)
	if err != nil {
		return nil, err
	}

	content, err := pdfreport.BuildDashboardPDF(dashboard, s.now())
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao gerar PDF do painel")
		return nil, NewLedgerError(ErrReportGeneration, apiErrors.ErrInternalServer, err.Error())
	}

	return &domain.Export{
		FileName:    pdfreport.FileName(filters.Year),
		ContentType: pdfContentType,
		Content:     content,
	}, nil
}

func (s *Service) parseDateOrToday(raw string) (string, error) {
	date := strings.TrimSpace(raw)
	if date == "" {
		return utils.Today(s.now()), nil
	}

	if err := validateDate(date); err != nil {
		return "", err
	}
	return date, nil
}

func validateDate(date string) error {
	if _, err := utils.ParseDate(date); err != nil {
		return NewLedgerError(ErrInvalidDate, apiErrors.ErrInvalidFormat, fmt.Sprintf("Data inválida: %q, use yyyy-mm-dd", date))
	}
	return nil
}

func parsePlatform(raw string) (domain.Platform, error) {
	if strings.TrimSpace(raw) == "" {
		return "", NewLedgerError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Plataforma é obrigatória")
	}

	platform, ok := domain.ParsePlatform(raw)
	if !ok {
		return "", NewLedgerError(ErrInvalidPlatform, apiErrors.ErrInvalidFormat, fmt.Sprintf("Plataforma desconhecida: %q", raw))
	}
	return platform, nil
}

// parsePlatformSet valida as plataformas do anúncio descartando repetições
func parsePlatformSet(raw []string) ([]domain.Platform, error) {
	platforms := make([]domain.Platform, 0, len(raw))
	seen := make(map[domain.Platform]struct{}, len(raw))

	for _, value := range raw {
		platform, ok := domain.ParsePlatform(value)
		if !ok {
			return nil, NewLedgerError(ErrInvalidPlatform, apiErrors.ErrInvalidFormat, fmt.Sprintf("Plataforma desconhecida: %q", value))
		}
		if _, dup := seen[platform]; dup {
			continue
		}
		seen[platform] = struct{}{}
		platforms = append(platforms, platform)
	}

	return platforms, nil
}

// parseCost lê um valor opcional e não negativo, vazio = 0
func parseCost(raw domain.AmountInput, field string) (float64, error) {
	value, _, err := pricing.ParseAmount(raw.String())
	if err != nil || value < 0 {
		return 0, NewLedgerError(ErrInvalidAmount, apiErrors.ErrInvalidFormat, fmt.Sprintf("%s inválido: %q", field, raw))
	}
	return value, nil
}

func parseOptionalAmount(raw domain.AmountInput, field string) (*float64, error) {
	value, ok, err := pricing.ParseAmount(raw.String())
	if err != nil || value < 0 {
		return nil, NewLedgerError(ErrInvalidAmount, apiErrors.ErrInvalidFormat, fmt.Sprintf("%s inválido: %q", field, raw))
	}
	if !ok {
		return nil, nil
	}
	return &value, nil
}
