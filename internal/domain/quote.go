package domain

// Quote расчет стоимости аренды, не хранится
type Quote struct {
	Days       int
	Subtotal   float64
	ServiceFee float64
	Taxes      float64
	Insurance  float64
	Total      float64
	// Deposit возвратный залог, в Total не входит
	Deposit float64
}
