package services

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"cashback-service/internal/models"
	"cashback-service/pkg/common"

	"gorm.io/gorm"
)

// ClickService issues tracked redirects into partner stores. The
// redirect must never be blocked by bookkeeping: once the click row
// exists, estimate failures are logged and swallowed.
type ClickService struct {
	DB       *gorm.DB
	Catalog  *CatalogService
	Cashback *CashbackService
	Helper   *HelperService
}

func NewClickService(db *gorm.DB, catalog *CatalogService, cashback *CashbackService, helper *HelperService) *ClickService {
	return &ClickService{DB: db, Catalog: catalog, Cashback: cashback, Helper: helper}
}

type TrackClickDTO struct {
	UserId   int    `json:"user_id"`
	OfferId  int    `json:"offer_id"`
	UserTier string `json:"user_tier"`
}

// TrackClick mints a click id, persists the click and returns the
// outbound tracking URL with the click id appended. For cashback
// offers with a known average order value it also books an estimated
// pending cashback, which the purchase webhook later supersedes with
// the partner's real figure.
func (s *ClickService) TrackClick(data TrackClickDTO) (interface{}, error) {
	offer, err := s.Catalog.GetOffer(data.OfferId)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.NewErrorResponse("Offer not found", nil, http.StatusNotFound), nil
		}
		return nil, err
	}

	click := models.Click{
		UserId:  data.UserId,
		OfferId: offer.ID,
		StoreId: offer.StoreId,
		ClickId: common.GenerateClickId(),
	}
	if err := s.DB.Create(&click).Error; err != nil {
		return nil, err
	}

	if offer.OfferType == models.OfferTypeCashback && offer.AvgOrderValue > 0 {
		ref := PendingCashbackRef{
			ClickId:          click.ClickId,
			UserTier:         data.UserTier,
			MerchantCategory: offer.Category,
			StoreName:        offer.Store.Name,
		}
		if _, err := s.Cashback.CreatePendingCashback(data.UserId, ref, offer.AvgOrderValue); err != nil {
			log.Printf("estimated cashback failed for click %s: %v", click.ClickId, err)
		}
	}

	s.Helper.RecordActivity(data.UserId, "click",
		fmt.Sprintf("Clicked through to %s (offer #%d)", offer.Store.Name, offer.ID))

	return common.NewSuccessResponse(map[string]interface{}{
		"clickId":     click.ClickId,
		"redirectUrl": buildRedirectUrl(offer.TrackingUrl, click.ClickId),
	}, "Click tracked"), nil
}

// buildRedirectUrl appends the click id to the partner tracking URL,
// preserving any query parameters already on it.
func buildRedirectUrl(trackingUrl, clickId string) string {
	parsed, err := url.Parse(trackingUrl)
	if err != nil {
		return fmt.Sprintf("%s?click_id=%s", trackingUrl, clickId)
	}
	query := parsed.Query()
	query.Set("click_id", clickId)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
