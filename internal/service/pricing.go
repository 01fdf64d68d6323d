package service

import (
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
)

// 固定coupon表, 結帳時對subtotal套用百分比折扣
var couponTable = map[string]float64{
	"WELCOME10": 10,
	"SAVE20":    20,
}

// EffectivePrice 套用折扣後的單價
func EffectivePrice(price, discountPercentage float64) decimal.Decimal {
	p := decimal.NewFromFloat(price)
	if discountPercentage <= 0 {
		return p
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discountPercentage).Div(decimal.NewFromInt(100)))
	return p.Mul(factor)
}

func LineTotal(price, discountPercentage float64, quantity int) decimal.Decimal {
	return EffectivePrice(price, discountPercentage).Mul(decimal.NewFromInt(int64(quantity)))
}

// CartSubtotal 優先用live product價格, 商品已刪除時用快照價
func CartSubtotal(items []model.PopulatedCartItem) decimal.Decimal {
	subtotal := decimal.NewFromInt(0)
	for _, item := range items {
		if item.Product != nil {
			subtotal = subtotal.Add(LineTotal(item.Product.Price, item.Product.DiscountPercentage, item.Quantity))
		} else {
			subtotal = subtotal.Add(LineTotal(item.Price, 0, item.Quantity))
		}
	}
	return subtotal
}

// CouponPercent 查無此code回傳(0, false)
func CouponPercent(code string) (float64, bool) {
	pct, ok := couponTable[code]
	return pct, ok
}

// CheckoutTotal = subtotal - coupon折扣 + 運費
func CheckoutTotal(subtotal decimal.Decimal, couponPercent, deliveryCharge float64) decimal.Decimal {
	discount := subtotal.Mul(decimal.NewFromFloat(couponPercent)).Div(decimal.NewFromInt(100))
	return subtotal.Sub(discount).Add(decimal.NewFromFloat(deliveryCharge))
}
