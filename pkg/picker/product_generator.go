package picker

import "math"

// unset marks a slot of a partial product that has not been assigned yet
const unset = math.MaxUint64

type productGenerator interface {
	// Builds every product (one index per domain) that holds the constraints, in lexicographic order (last domain varies fastest).
	// Slots are assigned left to right, and constraints are evaluated on every partial product: a slot whose value is math.MaxUint64 is not assigned yet,
	// so a constraint that relies on such a slot must hold (return true) until the slot is assigned.
	//
	// Example:
	//
	//	generator := newProductGenerator([]uint64{2, 3})
	//
	//	products := generator.ConstrainedProducts([]func(product []uint64) bool{
	//		func(product []uint64) bool {
	//			// Verify "product[1] == math.MaxUint64", since the predicate "product[1] != 0" relies on this slot
	//			return product[1] == math.MaxUint64 || product[1] != 0
	//		},
	//	})
	ConstrainedProducts(constraints []func(product []uint64) bool) [][]uint64
}

func newProductGenerator(domains []uint64) productGenerator {
	return &productGeneratorImplementation{domains: domains}
}

type productGeneratorImplementation struct {
	domains []uint64
}

func (generator *productGeneratorImplementation) ConstrainedProducts(constraints []func(product []uint64) bool) [][]uint64 {
	products := make([][]uint64, 0)
	product := make([]uint64, len(generator.domains))
	for i := range product {
		product[i] = unset
	}

	generator.constrainedProducts(constraints, 0, product, &products)
	return products
}

func (generator *productGeneratorImplementation) constrainedProducts(
	constraints []func(product []uint64) bool,
	currentDomain int,
	product []uint64,
	products *[][]uint64) {

	if currentDomain >= len(generator.domains) {
		productCopy := make([]uint64, len(product))
		copy(productCopy, product)
		*products = append(*products, productCopy)
		return
	}

	for i := uint64(0); i < generator.domains[currentDomain]; i++ {
		product[currentDomain] = i
		constraintViolated := false
		for _, constraint := range constraints {
			if !constraint(product) {
				constraintViolated = true
				break
			}
		}

		if constraintViolated {
			continue
		}

		generator.constrainedProducts(constraints, currentDomain+1, product, products)
	}

	product[currentDomain] = unset
}

// lastAssigned returns the index of the most recently assigned slot, or -1 if none is assigned
func lastAssigned(product []uint64) int {
	last := -1
	for i, value := range product {
		if value == unset {
			break
		}
		last = i
	}
	return last
}
