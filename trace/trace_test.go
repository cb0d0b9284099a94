package trace_test

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/katta/trace"
)

type failWriter struct {
	err error
}

func (w failWriter) Write([]byte) (int, error) {
	return 0, w.err
}

var _ = Describe("Record", func() {
	It("should format as a trace line", func() {
		Expect(trace.Record{Kind: trace.KIND_READ, Addr: 0xf00004, Desc: "Read Memory"}.String()).
			To(Equal("0 00f00004 Read Memory"))
		Expect(trace.Record{Kind: trace.KIND_WRITE, Addr: 0xffffffff, Desc: "Write Memory"}.String()).
			To(Equal("1 ffffffff Write Memory"))
		Expect(trace.Record{Kind: trace.KIND_EXEC, Addr: 0x10, Desc: "Halt"}.String()).
			To(Equal("2 00000010 Halt"))
	})

	It("should name the kinds", func() {
		Expect(trace.KIND_READ.String()).To(Equal("read"))
		Expect(trace.KIND_WRITE.String()).To(Equal("write"))
		Expect(trace.KIND_EXEC.String()).To(Equal("exec"))
		Expect(trace.Kind(7).String()).To(Equal("Kind(7)"))
	})
})

var _ = Describe("Writer", func() {
	var (
		out *bytes.Buffer
		tw  *trace.Writer
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		tw = trace.NewWriter(out)
	})

	It("should write one line per record", func() {
		tw.Emit(trace.Record{Kind: trace.KIND_EXEC, Addr: 0x0, Desc: "Push to Stack"})
		tw.Emit(trace.Record{Kind: trace.KIND_WRITE, Addr: 0xffffffff, Desc: "Write Memory"})

		Expect(tw.Flush()).To(Succeed())
		Expect(out.String()).To(Equal("2 00000000 Push to Stack\n1 ffffffff Write Memory\n"))
		Expect(tw.Count).To(Equal([3]int{0, 1, 1}))
	})

	It("should buffer until flushed", func() {
		tw.Emit(trace.Record{Kind: trace.KIND_EXEC, Addr: 0x0, Desc: "Halt"})
		Expect(out.Len()).To(Equal(0))
		Expect(tw.Flush()).To(Succeed())
		Expect(out.Len()).NotTo(BeZero())
	})

	It("should keep the first error", func() {
		errWrite := errors.New("disk full")
		tw = trace.NewWriter(failWriter{err: errWrite})

		tw.Emit(trace.Record{Kind: trace.KIND_EXEC, Addr: 0x0, Desc: "Halt"})
		Expect(tw.Flush()).To(MatchError(errWrite))

		tw.Emit(trace.Record{Kind: trace.KIND_EXEC, Addr: 0x4, Desc: "Halt"})
		Expect(tw.Flush()).To(MatchError(errWrite))
		Expect(tw.Count[trace.KIND_EXEC]).To(Equal(1))
	})
})

var _ = Describe("Buffer", func() {
	It("should count records by kind", func() {
		buf := &trace.Buffer{}
		buf.Emit(trace.Record{Kind: trace.KIND_EXEC, Addr: 0x0, Desc: "Addition"})
		buf.Emit(trace.Record{Kind: trace.KIND_READ, Addr: 0xf00000, Desc: "Read Memory"})
		buf.Emit(trace.Record{Kind: trace.KIND_EXEC, Addr: 0x4, Desc: "Halt"})

		Expect(buf.Count(trace.KIND_EXEC)).To(Equal(2))
		Expect(buf.Count(trace.KIND_READ)).To(Equal(1))
		Expect(buf.Count(trace.KIND_WRITE)).To(BeZero())
		Expect(buf.Lines()).To(Equal([]string{
			"2 00000000 Addition",
			"0 00f00000 Read Memory",
			"2 00000004 Halt",
		}))

		buf.Reset()
		Expect(buf.Records).To(BeEmpty())
	})
})

var _ = Describe("Tee", func() {
	It("should emit to every sink in order", func() {
		first := &trace.Buffer{}
		second := &trace.Buffer{}
		sink := trace.Tee(first, trace.Discard, second)

		rec := trace.Record{Kind: trace.KIND_WRITE, Addr: 0xf00008, Desc: "Write Memory"}
		sink.Emit(rec)

		Expect(first.Records).To(Equal([]trace.Record{rec}))
		Expect(second.Records).To(Equal([]trace.Record{rec}))
	})
})

var _ = Describe("Read", func() {
	It("should parse what the Writer writes", func() {
		recs := []trace.Record{
			{Kind: trace.KIND_EXEC, Addr: 0x8, Desc: "Move to Register"},
			{Kind: trace.KIND_READ, Addr: 0xf00004, Desc: "Read Memory"},
			{Kind: trace.KIND_WRITE, Addr: 0xfffffffb, Desc: "Write Memory"},
		}

		out := &bytes.Buffer{}
		tw := trace.NewWriter(out)
		for _, rec := range recs {
			tw.Emit(rec)
		}
		Expect(tw.Flush()).To(Succeed())

		parsed, err := trace.Read(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(recs))
	})

	It("should skip blank lines and allow empty descriptions", func() {
		parsed, err := trace.Read(strings.NewReader("\n2 00000000\n\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal([]trace.Record{{Kind: trace.KIND_EXEC, Addr: 0x0}}))
	})

	DescribeTable("should reject malformed lines",
		func(line string) {
			_, err := trace.Read(strings.NewReader("2 00000000 Halt\n" + line + "\n"))
			var recErr *trace.ErrRecord
			Expect(errors.As(err, &recErr)).To(BeTrue())
			Expect(recErr.LineNo).To(Equal(2))
			Expect(recErr.Line).To(Equal(line))
		},
		Entry("unknown kind", "3 00000000 Halt"),
		Entry("short address", "2 0000 Halt"),
		Entry("bad address", "2 0000000g Halt"),
		Entry("missing address", "2"),
		Entry("bad kind", "x 00000000 Halt"),
	)
})
