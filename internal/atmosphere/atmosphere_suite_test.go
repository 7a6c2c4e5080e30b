package atmosphere_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAtmosphere(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Atmosphere Suite")
}
