package service

import "github.com/RoyceAzure/lab/storefront/internal/model"

// CanAccessUserResource owner本人或admin才可以碰per-user資源
func CanAccessUserResource(principal model.Principal, ownerID string) bool {
	return principal.ID == ownerID || principal.IsAdmin()
}
