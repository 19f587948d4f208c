package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/parcel-next/internal/constants"
	"github.com/parcel-next/internal/models"

	"github.com/shopspring/decimal"
)

// parcelRate 按类型计费：基础价 + 每公斤单价
type parcelRate struct {
	Base  int64
	PerKg int64
}

var parcelRates = map[models.ParcelType]parcelRate{
	models.ParcelTypeDocument: {Base: 50, PerKg: 5},
	models.ParcelTypeBox:      {Base: 100, PerKg: 10},
	models.ParcelTypeFragile:  {Base: 150, PerKg: 15},
	models.ParcelTypeOther:    {Base: 150, PerKg: 20},
}

// CalculateParcelCost 按类型与重量计算运费，未知类型返回错误。
func CalculateParcelCost(parcelType models.ParcelType, weight float64) (models.Money, error) {
	rate, ok := parcelRates[parcelType]
	if !ok {
		return models.Money{}, ErrParcelTypeInvalid
	}
	cost := decimal.NewFromInt(rate.Base).
		Add(decimal.NewFromFloat(weight).Mul(decimal.NewFromInt(rate.PerKg)))
	return models.NewMoneyFromDecimal(cost), nil
}

// GenerateTrackingID 生成 TRK-YYYYMMDD-XXXXXX 格式的追踪单号
func GenerateTrackingID() string {
	datePart := time.Now().Format("20060102")
	return fmt.Sprintf("%s-%s-%s", constants.TrackingIDPrefix, datePart, randNumeric(constants.TrackingIDRandDigits))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
