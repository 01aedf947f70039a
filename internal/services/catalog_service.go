package services

import (
	"starbank/internal/models"
	"starbank/internal/repositories"
)

// CatalogService manages the tariff catalog entities. These are plain CRUD
// aggregates; the interesting part is keeping the M2M rule links consistent.
type CatalogService struct {
	typeRepo     repositories.TransactionTypeRepositoryInterface
	cashbackRepo repositories.CashbackRepositoryInterface
	cardTypeRepo repositories.CardTypeRepositoryInterface
	designRepo   repositories.CardDesignRepositoryInterface
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	typeRepo repositories.TransactionTypeRepositoryInterface,
	cashbackRepo repositories.CashbackRepositoryInterface,
	cardTypeRepo repositories.CardTypeRepositoryInterface,
	designRepo repositories.CardDesignRepositoryInterface,
) CatalogServiceInterface {
	return &CatalogService{
		typeRepo:     typeRepo,
		cashbackRepo: cashbackRepo,
		cardTypeRepo: cardTypeRepo,
		designRepo:   designRepo,
	}
}

func (cs *CatalogService) CreateTransactionType(title string) (*models.TransactionType, error) {
	transactionType := &models.TransactionType{Title: title}
	if err := cs.typeRepo.Create(transactionType); err != nil {
		return nil, err
	}
	return transactionType, nil
}

func (cs *CatalogService) GetTransactionType(id uint) (*models.TransactionType, error) {
	return cs.typeRepo.GetByID(id)
}

func (cs *CatalogService) GetTransactionTypes() ([]models.TransactionType, error) {
	return cs.typeRepo.GetAll()
}

func (cs *CatalogService) UpdateTransactionType(id uint, title string) (*models.TransactionType, error) {
	transactionType, err := cs.typeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	transactionType.Title = title
	if err := cs.typeRepo.Update(transactionType); err != nil {
		return nil, err
	}
	return transactionType, nil
}

func (cs *CatalogService) DeleteTransactionType(id uint) error {
	return cs.typeRepo.Delete(id)
}

func (cs *CatalogService) CreateCashback(title string, percent int, transactionTypeIDs []uint) (*models.Cashback, error) {
	cashback := &models.Cashback{Title: title, Percent: percent}
	if err := cs.cashbackRepo.Create(cashback); err != nil {
		return nil, err
	}

	if len(transactionTypeIDs) > 0 {
		if err := cs.cashbackRepo.SetTransactionTypes(cashback.ID, transactionTypeIDs); err != nil {
			return nil, err
		}
	}

	return cs.cashbackRepo.GetByID(cashback.ID)
}

func (cs *CatalogService) GetCashback(id uint) (*models.Cashback, error) {
	return cs.cashbackRepo.GetByID(id)
}

func (cs *CatalogService) GetCashbacks() ([]models.Cashback, error) {
	return cs.cashbackRepo.GetAll()
}

func (cs *CatalogService) UpdateCashback(id uint, title *string, percent *int, transactionTypeIDs []uint) (*models.Cashback, error) {
	cashback, err := cs.cashbackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		cashback.Title = *title
	}
	if percent != nil {
		cashback.Percent = *percent
	}
	if err := cs.cashbackRepo.Update(cashback); err != nil {
		return nil, err
	}

	if transactionTypeIDs != nil {
		if err := cs.cashbackRepo.SetTransactionTypes(id, transactionTypeIDs); err != nil {
			return nil, err
		}
	}

	return cs.cashbackRepo.GetByID(id)
}

func (cs *CatalogService) DeleteCashback(id uint) error {
	return cs.cashbackRepo.Delete(id)
}

func (cs *CatalogService) CreateCardType(title string, pushPrice, servicePrice *int64, cashbackIDs []uint) (*models.CardType, error) {
	cardType := &models.CardType{
		Title:        title,
		PushPrice:    models.DefaultPushPrice,
		ServicePrice: models.DefaultServicePrice,
	}
	if pushPrice != nil {
		cardType.PushPrice = *pushPrice
	}
	if servicePrice != nil {
		cardType.ServicePrice = *servicePrice
	}

	if err := cs.cardTypeRepo.Create(cardType); err != nil {
		return nil, err
	}

	if len(cashbackIDs) > 0 {
		if err := cs.cardTypeRepo.SetCashbacks(cardType.ID, cashbackIDs); err != nil {
			return nil, err
		}
	}

	return cs.cardTypeRepo.GetByID(cardType.ID)
}

func (cs *CatalogService) GetCardType(id uint) (*models.CardType, error) {
	return cs.cardTypeRepo.GetByID(id)
}

func (cs *CatalogService) GetCardTypes() ([]models.CardType, error) {
	return cs.cardTypeRepo.GetAll()
}

func (cs *CatalogService) UpdateCardType(id uint, title *string, pushPrice, servicePrice *int64, cashbackIDs []uint) (*models.CardType, error) {
	cardType, err := cs.cardTypeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		cardType.Title = *title
	}
	if pushPrice != nil {
		cardType.PushPrice = *pushPrice
	}
	if servicePrice != nil {
		cardType.ServicePrice = *servicePrice
	}
	if err := cs.cardTypeRepo.Update(cardType); err != nil {
		return nil, err
	}

	if cashbackIDs != nil {
		if err := cs.cardTypeRepo.SetCashbacks(id, cashbackIDs); err != nil {
			return nil, err
		}
	}

	return cs.cardTypeRepo.GetByID(id)
}

func (cs *CatalogService) DeleteCardType(id uint) error {
	return cs.cardTypeRepo.Delete(id)
}

func (cs *CatalogService) CreateCardDesign(design *models.CardDesign) (*models.CardDesign, error) {
	if err := cs.designRepo.Create(design); err != nil {
		return nil, err
	}
	return design, nil
}

func (cs *CatalogService) GetCardDesign(id uint) (*models.CardDesign, error) {
	return cs.designRepo.GetByID(id)
}

func (cs *CatalogService) GetCardDesigns() ([]models.CardDesign, error) {
	return cs.designRepo.GetAll()
}

func (cs *CatalogService) UpdateCardDesign(id uint, title, author, description, example *string) (*models.CardDesign, error) {
	design, err := cs.designRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		design.Title = *title
	}
	if author != nil {
		design.Author = *author
	}
	if description != nil {
		design.Description = *description
	}
	if example != nil {
		design.Example = *example
	}

	if err := cs.designRepo.Update(design); err != nil {
		return nil, err
	}
	return design, nil
}

func (cs *CatalogService) DeleteCardDesign(id uint) error {
	return cs.designRepo.Delete(id)
}
