package scanning

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("OCRSpace", func() {
	var (
		server    *ghttp.Server
		extractor *OCRSpace
		image     []byte
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		image = encodePNG(testImage())

		var err error
		extractor, err = NewOCRSpace(OCRSpaceConfig{
			APIKey:   "test-key",
			Endpoint: server.URL() + "/parse/image",
		})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	It("should require an API key", func() {
		_, err := NewOCRSpace(OCRSpaceConfig{})
		Expect(err).To(HaveOccurred())
	})

	It("should post the form and return the parsed text", func() {
		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest(http.MethodPost, "/parse/image"),
			func(w http.ResponseWriter, r *http.Request) {
				defer GinkgoRecover()
				Expect(r.ParseMultipartForm(1 << 20)).To(Succeed())
				Expect(r.FormValue("apikey")).To(Equal("test-key"))
				Expect(r.FormValue("language")).To(Equal("eng"))
				Expect(r.FormValue("OCREngine")).To(Equal("2"))
				Expect(r.FormValue("isOverlayRequired")).To(Equal("false"))
				Expect(r.FormValue("isTable")).To(Equal("true"))

				_, header, err := r.FormFile("file")
				Expect(err).NotTo(HaveOccurred())
				Expect(header.Size).To(Equal(int64(len(image))))
			},
			ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
				"ParsedResults": []map[string]any{
					{"ParsedText": "MILK 3.49\r\nTOTAL 3.49\r\n", "FileParseExitCode": 1},
				},
				"OCRExitCode":           1,
				"IsErroredOnProcessing": false,
			}),
		))

		text, err := extractor.ExtractText(context.Background(), image, "image/png")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("MILK 3.49\nTOTAL 3.49"))
	})

	It("should surface processing errors given as a list", func() {
		server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
			"IsErroredOnProcessing": true,
			"ErrorMessage":          []string{"E101: timed out", "retry later"},
		}))

		_, err := extractor.ExtractText(context.Background(), image, "image/png")
		Expect(err).To(MatchError(ContainSubstring("E101: timed out; retry later")))
	})

	It("should surface processing errors given as a string", func() {
		server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
			"IsErroredOnProcessing": true,
			"ErrorMessage":          "Invalid API key",
		}))

		_, err := extractor.ExtractText(context.Background(), image, "image/png")
		Expect(err).To(MatchError(ContainSubstring("Invalid API key")))
	})

	It("should report empty results as ErrNoText", func() {
		server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
			"ParsedResults": []map[string]any{{"ParsedText": "  "}},
		}))

		_, err := extractor.ExtractText(context.Background(), image, "image/png")
		Expect(errors.Is(err, ErrNoText)).To(BeTrue())
	})

	It("should report HTTP errors", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusForbidden, "nope"))

		_, err := extractor.ExtractText(context.Background(), image, "image/png")
		Expect(err).To(MatchError(ContainSubstring("status 403")))
	})
})
