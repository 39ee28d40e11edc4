package inventory

// AverageDailySales suma las cantidades vendidas en la ventana y divide por windowDays.
// Secuencia vacía → 0. windowDays <= 0 también devuelve 0 para no dividir por cero.
func AverageDailySales(quantities []int, windowDays int) float64 {
	total := 0
	for _, q := range quantities {
		total += q
	}
	return averageFromTotal(total, windowDays)
}

// AverageDailySalesFromTotal variante para cuando la suma ya viene agregada desde SQL.
func AverageDailySalesFromTotal(unitsSold int64, windowDays int) float64 {
	return averageFromTotal(int(unitsSold), windowDays)
}

func averageFromTotal(total, windowDays int) float64 {
	if windowDays <= 0 || total <= 0 {
		return 0
	}
	return float64(total) / float64(windowDays)
}

// DaysUntilStockout estima los días hasta agotar quantity al ritmo avgDailySales.
// Sin ventas (avg <= 0) devuelve nil: la proyección no está definida. No redondea.
func DaysUntilStockout(quantity int, avgDailySales float64) *float64 {
	if avgDailySales <= 0 {
		return nil
	}
	q := quantity
	if q < 0 {
		q = 0
	}
	days := float64(q) / avgDailySales
	return &days
}
