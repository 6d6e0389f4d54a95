package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced technical interviewer and placement trainer helping students prepare for job interviews.

Rules:
- Respond only with JSON matching the requested schema.
- Keep wording clear and beginner-friendly unless told otherwise.
- Multiple-choice questions have exactly 4 options and one correct answer, identified by its 0-based index.
- Never include markdown fences or commentary outside the JSON.`

const runnerSystemPrompt = `You act as a code runner and compiler. You do not have a real interpreter; simulate execution faithfully and report what the code would actually output, including compile and runtime errors.`

const evaluatorSystemPrompt = `You act as a technical interviewer evaluating a coding assessment. Judge correctness, syntax, and efficiency honestly.`

// promptTopic expands dashboard category names into a precise subject
// description so generated questions stay on topic.
func promptTopic(topic string) string {
	switch topic {
	case "Core Subjects":
		return "Core Computer Science subjects: Operating Systems, DBMS, Computer Networks, and Object Oriented Programming (OOPS)"
	case "Aptitude":
		return "Quantitative Aptitude and Logical Reasoning"
	}
	return topic
}

func buildQuestionsMessage(topic string, n int) string {
	t := promptTopic(topic)
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d beginner-friendly multiple-choice interview questions for %s.\n", n, t)
	fmt.Fprintf(&b, "Ensure the questions are strictly related to %s.\n", t)
	b.WriteString("Include 4 options and the correct answer index (0-3).")
	return b.String()
}

func buildMixedMessage(n int) string {
	aptitude := n / 2
	core := n - aptitude
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %d-question mixed screening assessment.\n", n)
	fmt.Fprintf(&b, "- %d questions on Quantitative Aptitude & Logic.\n", aptitude)
	fmt.Fprintf(&b, "- %d questions on Core Computer Science (OS, DBMS, Networks).\n", core)
	fmt.Fprintf(&b, "Assign a category to each question: %q or %q.\n", CategoryAptitude, CategoryCoreCS)
	b.WriteString("Include 4 options and the correct answer index.")
	return b.String()
}

func buildChallengeMessage(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a beginner/intermediate level coding interview problem for %s.\n", topic)
	b.WriteString("The problem should be suitable for a screening assessment.\n")
	fmt.Fprintf(&b, "Include problem name, description, constraints, 3 test cases, and starter code in %s.", topic)
	return b.String()
}

func buildRunMessage(problem, code, language string, cases []TestCase) string {
	if cases == nil {
		cases = []TestCase{}
	}
	casesJSON, _ := json.Marshal(cases)

	var b strings.Builder
	fmt.Fprintf(&b, "Problem: %s\n", problem)
	fmt.Fprintf(&b, "Language: %s\n", language)
	fmt.Fprintf(&b, "Code:\n%s\n", code)
	fmt.Fprintf(&b, "Test Cases: %s\n\n", casesJSON)
	b.WriteString("Simulate the execution of the code for EACH test case strictly.\n")
	b.WriteString("passed is true only if ALL test cases passed. For each case report input, expected, the simulated actual output, whether it passed, and an error message if compilation or execution failed.")
	return b.String()
}

func buildEvaluateMessage(problem, code, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Problem: %s\n", problem)
	fmt.Fprintf(&b, "Language: %s\n", language)
	fmt.Fprintf(&b, "User Code:\n%s\n\n", code)
	b.WriteString("Evaluate the code logic, syntax, and efficiency.\n")
	b.WriteString("- success: true if it passes all hidden test cases and the logic is correct.\n")
	b.WriteString("- feedback: detailed feedback on performance and code style.\n")
	b.WriteString("- score: 0-100 for quality and correctness.\n")
	b.WriteString("- weakAreas: coding concepts the user struggled with (e.g. \"Loops\", \"Edge Cases\").\n")
	b.WriteString("- strongAreas: coding concepts the user did well (e.g. \"Syntax\", \"Logic\").")
	return b.String()
}

func levelInstruction(level string) string {
	if strings.EqualFold(level, "beginner") {
		return "Assume the student has ZERO prior knowledge. Explain things simply. Start from the absolute basics."
	}
	return "Target level: " + level
}

func buildRoadmapMessage(req RoadmapRequest) string {
	var b strings.Builder

	if req.Topic == ComprehensiveTopic {
		fmt.Fprintf(&b, "Create a comprehensive %d-day interview preparation roadmap for a %s level student.\n", req.Days, req.Level)
		b.WriteString("This roadmap MUST systematically cover ALL interview rounds in a logical flow:\n")
		b.WriteString("1. Aptitude & Logical Reasoning\n")
		b.WriteString("2. Core Computer Science Subjects (OS, DBMS, Computer Networks)\n")
		b.WriteString("3. Technical Coding (Data Structures & Algorithms)\n")
		b.WriteString("4. HR & Behavioral (Soft Skills)\n\n")
	} else {
		fmt.Fprintf(&b, "Create a step-by-step %d-day interview preparation roadmap for a %s level student focusing on %s.\n", req.Days, req.Level, req.Topic)
	}

	b.WriteString(levelInstruction(req.Level))
	b.WriteString("\n")
	if len(req.WeakAreas) > 0 {
		fmt.Fprintf(&b, "The student needs extra help with: %s.\n", strings.Join(req.WeakAreas, ", "))
	}

	if req.Topic == ComprehensiveTopic {
		b.WriteString("Structure the days to mix these topics or focus on specific rounds sequentially (e.g., Week 1: Coding & Aptitude, Week 2: Core CS & HR).\n")
	}

	b.WriteString("\nFor each day, provide a clear main topic, a simple summary, and 3 actionable learning tasks.\n")
	b.WriteString("For each task, recommend a specific, high-quality platform or resource name.\n")
	b.WriteString("Task types: 'video' (a topic to search on YouTube), 'reading' (intro articles), 'coding' (write simple code), 'practice' (mock test or speech practice).\n")
	b.WriteString("If the task type is 'coding', you MUST provide a codingChallenge object: a specific algorithm or problem related to the day's topic, with valid starter code in JavaScript or Python.")
	return b.String()
}
