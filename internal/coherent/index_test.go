package coherent_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fitcsv/internal/amplitude"
	"github.com/san-kum/fitcsv/internal/coherent"
)

func mustParse(full string) amplitude.Amplitude {
	amp, err := amplitude.Parse(full)
	Expect(err).NotTo(HaveOccurred())
	return amp
}

var _ = Describe("Index", func() {
	var idx *coherent.Index

	BeforeEach(func() {
		idx = coherent.NewIndex()
	})

	It("keeps a single decoded amplitude alone in the finest level", func() {
		Expect(idx.Add(mustParse("xx::ImagPosSign::p1p0S"))).To(Succeed())

		Expect(idx.Keys(coherent.LevelEJPmL)).To(Equal([]string{"p1p0S"}))
		Expect(idx.Members(coherent.LevelEJPmL, "p1p0S")).To(ConsistOf("xx::ImagPosSign::p1p0S"))
	})

	It("places every amplitude in exactly one bucket per level", func() {
		amps := []string{
			"xx::ImagPosSign::p1p0S",
			"xx::ImagPosSign::p1p0D",
			"xx::RealNegSign::m1ppS",
		}
		for _, a := range amps {
			Expect(idx.Add(mustParse(a))).To(Succeed())
		}

		for _, lv := range coherent.Levels {
			total := 0
			for _, key := range idx.Keys(lv) {
				total += len(idx.Members(lv, key))
			}
			Expect(total).To(Equal(len(amps)), "level %s", lv)
		}
	})

	It("collapses amplitudes sharing JPL while separating distinct L", func() {
		Expect(idx.Add(mustParse("xx::a::p1p0S"))).To(Succeed())
		Expect(idx.Add(mustParse("xx::a::p1p0D"))).To(Succeed())
		Expect(idx.Add(mustParse("xx::b::m1p0S"))).To(Succeed())

		Expect(idx.Keys(coherent.LevelJPL)).To(Equal([]string{"1pS", "1pD"}))
		Expect(idx.Members(coherent.LevelJPL, "1pS")).To(Equal([]string{"xx::a::p1p0S", "xx::b::m1p0S"}))
		Expect(idx.Members(coherent.LevelJPL, "1pD")).To(Equal([]string{"xx::a::p1p0D"}))
	})

	It("merges reflectivity partners at levels that drop e", func() {
		Expect(idx.Add(mustParse("xx::a::p1p0S"))).To(Succeed())
		Expect(idx.Add(mustParse("xx::b::m1p0S"))).To(Succeed())

		Expect(idx.Keys(coherent.LevelJPmL)).To(Equal([]string{"1p0S"}))
		Expect(idx.Members(coherent.LevelJPmL, "1p0S")).To(Equal([]string{"xx::a::p1p0S", "xx::b::m1p0S"}))
		Expect(idx.Keys(coherent.LevelE)).To(Equal([]string{"p", "m"}))
	})

	It("routes background into the eJPmL bucket only", func() {
		Expect(idx.Add(mustParse("xx::a::p1p0S"))).To(Succeed())
		Expect(idx.Add(mustParse("xx::a::p1p0D"))).To(Succeed())
		Expect(idx.Add(mustParse("xx::a::m1p0S"))).To(Succeed())
		Expect(idx.Add(mustParse("xx::a::Bkgd"))).To(Succeed())

		Expect(idx.Keys(coherent.LevelEJPmL)).To(HaveLen(4))
		Expect(idx.Members(coherent.LevelEJPmL, coherent.BackgroundKey)).To(ConsistOf("xx::a::Bkgd"))

		for _, lv := range coherent.Levels[1:] {
			total := 0
			for _, key := range idx.Keys(lv) {
				for _, m := range idx.Members(lv, key) {
					Expect(m).NotTo(Equal("xx::a::Bkgd"))
					total++
				}
			}
			Expect(total).To(BeNumerically("<=", 3), "level %s", lv)
		}
	})

	It("rejects duplicate amplitude names", func() {
		Expect(idx.Add(mustParse("xx::a::p1p0S"))).To(Succeed())
		Expect(idx.Add(mustParse("xx::a::p1p0S"))).NotTo(Succeed())
	})
})

var _ = Describe("Key", func() {
	qn := amplitude.QuantumNumbers{E: "p", J: "1", P: "p", M: "0", L: "S"}

	It("projects onto each level by dropping fields", func() {
		Expect(coherent.Key(coherent.LevelEJPmL, qn)).To(Equal("p1p0S"))
		Expect(coherent.Key(coherent.LevelJPmL, qn)).To(Equal("1p0S"))
		Expect(coherent.Key(coherent.LevelEJPL, qn)).To(Equal("p1pS"))
		Expect(coherent.Key(coherent.LevelJPL, qn)).To(Equal("1pS"))
		Expect(coherent.Key(coherent.LevelEJP, qn)).To(Equal("p1p"))
		Expect(coherent.Key(coherent.LevelJP, qn)).To(Equal("1p"))
		Expect(coherent.Key(coherent.LevelE, qn)).To(Equal("p"))
	})
})
