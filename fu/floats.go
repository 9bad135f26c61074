package fu

/*
Flatnr flattens rows into one row-major slice, the layout mat.NewDense expects
*/
func Flatnr(a [][]float64) []float64 {
	n := 0
	for _, x := range a {
		n += len(x)
	}
	r := make([]float64, n)
	i := 0
	for _, x := range a {
		copy(r[i:i+len(x)], x)
		i += len(x)
	}
	return r
}

// Fnzs returns the first non-empty string
func Fnzs(a ...string) string {
	for _, x := range a {
		if x != "" {
			return x
		}
	}
	return ""
}
