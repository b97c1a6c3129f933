package services

import (
	"fmt"
	"strings"

	"github.com/hirevox/hirevox/internal/models"
)

// FormatRole turns a role id like "frontend-developer" into its display
// form "Frontend Developer". Already-formatted input passes through.
func FormatRole(roleID string) string {
	words := strings.Split(roleID, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func buildQuestionPrompt(ivType, level, role string, techStack []string) string {
	return fmt.Sprintf(`Generate 8-10 interview questions for a %s %s position.
The interview type should focus on %s questions.
The candidate has experience with: %s.

Please return only the questions in a valid JSON array format, like this:
["Question 1", "Question 2", "Question 3"]

The questions should be challenging but appropriate for the experience level.`,
		level, FormatRole(role), ivType, strings.Join(techStack, ", "))
}

func buildConversationPrompt(iv *models.Interview, question string, history []models.TranscriptTurn, userInput string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `You are an AI interviewer conducting a %s interview for a %s %s position.

The technologies relevant to this position are: %s.

Your task is to:
1. Evaluate the candidate's response to the current question
2. Provide a follow-up based on their answer or ask for clarification if needed
3. Decide if it's time to move to the next question

Current question: %q

If the candidate has fully answered the question and provided sufficient detail, you may move to the next question.
If the answer was incomplete or needs elaboration, ask a follow-up question related to the same topic.

Important:
- Maintain a professional interviewer tone
- Keep responses concise (max 2-3 sentences)
- Do not explain that you are an AI
- Do not provide the correct answer or critique the response yet (save feedback for the end)

In your response, include one of these flags in your reasoning:
- %s if we should move to the next question
- %s if we need more information on the current question
- %s if this was the final question or we've covered enough ground

Conversation history:
`, iv.Type, iv.Level, iv.Role, strings.Join(iv.TechStack, ", "),
		question, tokenMoveToNext, tokenStayOnCurrent, tokenEndInterview)

	for i, turn := range history {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s: %s", strings.ToUpper(turn.Role), turn.Content)
	}

	fmt.Fprintf(&sb, "\n\nUSER: %s", userInput)
	return sb.String()
}

func buildFeedbackPrompt(iv *models.Interview, transcript []models.TranscriptTurn) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `You are an expert interviewer and hiring manager evaluating an interview for a %s %s position.

The interview focused on %s questions and covered technologies including: %s.

Your task is to provide comprehensive feedback on the candidate's performance including:
1. Overall assessment (score out of 100)
2. Scores for different categories (technical knowledge, communication, problem-solving)
3. Key strengths (3-5 points)
4. Areas for improvement (3-5 points)
5. Final assessment summary (2-3 sentences)

Format your response as a valid JSON object with the following structure:
{
  "totalScore": 85,
  "categoryScores": [
    {"name": "Technical Knowledge", "score": 80, "comment": "Demonstrated good understanding of core concepts..."},
    {"name": "Communication", "score": 90, "comment": "Articulated ideas clearly and concisely..."},
    {"name": "Problem-Solving", "score": 85, "comment": "Showed strong analytical thinking..."}
  ],
  "strengths": [
    "Strong understanding of fundamental concepts"
  ],
  "areasForImprovement": [
    "Could provide more detailed examples"
  ],
  "finalAssessment": "Overall, the candidate demonstrated solid skills for the position."
}

Be fair but critical in your assessment. Base your evaluation only on the interview transcript.

Here are the questions that were prepared for this interview:
`, iv.Level, iv.Role, iv.Type, strings.Join(iv.TechStack, ", "))

	for i, q := range iv.Questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q)
	}

	sb.WriteString("\nNow, here is the full interview transcript:\n")
	for i, turn := range transcript {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s: %s", strings.ToUpper(turn.Role), turn.Content)
	}

	sb.WriteString("\n\nPlease analyze this interview and provide your feedback in the JSON format described.")
	return sb.String()
}
