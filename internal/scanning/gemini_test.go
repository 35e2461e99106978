package scanning

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeGenerator struct {
	parts []genai.Part
	resp  *genai.GenerateContentResponse
	err   error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = parts
	return f.resp, f.err
}

func textResponse(chunks ...string) *genai.GenerateContentResponse {
	parts := make([]genai.Part, len(chunks))
	for i, c := range chunks {
		parts[i] = genai.Text(c)
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

var _ = Describe("Gemini", func() {
	var generator *fakeGenerator

	BeforeEach(func() {
		generator = &fakeGenerator{}
	})

	It("should require an API key", func() {
		_, err := NewGemini(context.Background(), "", "")
		Expect(err).To(HaveOccurred())
	})

	It("should join the text parts of the first candidate", func() {
		generator.resp = textResponse("MILK 3.49\n", "TOTAL 3.49")

		text, err := newGeminiWithModel(generator).ExtractText(context.Background(), encodePNG(testImage()), "image/png")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("MILK 3.49\nTOTAL 3.49"))

		Expect(generator.parts).To(HaveLen(2))
		Expect(generator.parts[1]).To(Equal(genai.Text(transcriptionPrompt)))
	})

	It("should fail without candidates", func() {
		generator.resp = &genai.GenerateContentResponse{}

		_, err := newGeminiWithModel(generator).ExtractText(context.Background(), encodePNG(testImage()), "image/png")
		Expect(err).To(MatchError(ContainSubstring("no response")))
	})

	It("should wrap generation errors", func() {
		generator.err = errors.New("quota exceeded")

		_, err := newGeminiWithModel(generator).ExtractText(context.Background(), encodePNG(testImage()), "image/png")
		Expect(err).To(MatchError(ContainSubstring("quota exceeded")))
	})

	It("should close without a client", func() {
		Expect(newGeminiWithModel(generator).Close()).To(Succeed())
	})
})
