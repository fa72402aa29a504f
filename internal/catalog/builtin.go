package catalog

// Builtin returns the built-in template table in registration order.
func Builtin() []Template {
	out := make([]Template, len(builtin))
	for i, t := range builtin {
		out[i] = t.clone()
	}
	return out
}

var builtin = []Template{
	{
		ID:          "function_generation",
		Name:        "Function generation",
		Description: "Generate a simple, focused function from a short description",
		TaskType:    TaskCodeGeneration,
		Tool:        ToolGeneral,
		Body: `Write a {language} function for the following requirement.

## Function
{function_description}

## Input parameters
{input_parameters}

## Return value
{return_value}

## Requirements
1. Validate every input and fail with a clear error on bad values.
2. Add a doc comment that explains parameters and the return value.
3. Follow the idiomatic style of {language}.
4. Cover edge cases such as empty input and boundary values.

## Constraints
{constraints}

Return the function followed by a short usage example.`,
		Variables: []string{"language", "function_description", "input_parameters", "return_value", "constraints"},
		Tips: []string{
			"Name the input types and the expected return type explicitly.",
			"Mention performance limits if the function runs on large inputs.",
		},
		Examples: []string{
			"Write a Python function that parses a CSV file and returns a list of dicts.",
		},
	},
	{
		ID:          "cursor_feature_implementation",
		Name:        "Cursor feature implementation",
		Description: "Implement a new feature inside an existing project with Cursor",
		TaskType:    TaskCodeGeneration,
		Tool:        ToolCursor,
		Body: `@codebase I am working on a {project_type} project built with {tech_stack}.

## Project structure
{project_structure}

## Where I am
{current_location}

## Feature to implement
{feature_description}

## Files to modify
{files_to_modify}

## Existing components to reuse
{existing_components}

Please:
1. Read the referenced files before changing anything.
2. Keep the existing code style and naming.
3. Reuse existing components instead of duplicating logic.
4. List every file you changed and explain each change briefly.`,
		Variables: []string{"project_type", "tech_stack", "project_structure", "current_location", "feature_description", "files_to_modify", "existing_components"},
		Tips: []string{
			"Reference files with @file so Cursor loads them into context.",
			"Describe the directory layout before asking for changes.",
		},
	},
	{
		ID:          "code_review",
		Name:        "Code review",
		Description: "Detailed code review covering correctness and security",
		TaskType:    TaskCodeReview,
		Tool:        ToolGeneral,
		Body: `Review the following {language} code.

~~~
{code_content}
~~~

## Context
{context_info}

## Review checklist
1. Correctness: logic errors, unhandled edge cases.
2. Security: injection, unsafe input handling, secrets in code.
3. Performance: unnecessary allocations, slow algorithms.
4. Maintainability: naming, structure, duplication.

## Output format
For each finding give the line, the severity (high, medium, low), the problem and a suggested fix.
Finish with an overall assessment.`,
		Variables: []string{"language", "code_content", "context_info"},
		Tips: []string{
			"Paste the complete function or file rather than fragments.",
			"Say which aspects matter most for this review.",
		},
	},
	{
		ID:          "bug_fixing",
		Name:        "Bug fixing",
		Description: "Diagnose and fix a bug given its symptoms and environment",
		TaskType:    TaskBugFixing,
		Tool:        ToolGeneral,
		Body: `Help me fix a bug in my {language} code.

## Problem
{bug_description}

## Error message
~~~
{error_message}
~~~

## Code
~~~
{code_snippet}
~~~

## Reproduction steps
{reproduction_steps}

## Expected behavior
{expected_behavior}

## Actual behavior
{actual_behavior}

## Environment
- Version: {version}
- OS: {os}
- Dependencies: {dependencies}

## Additional context
{additional_context}

Please:
1. Explain the root cause.
2. Provide the corrected code.
3. Suggest a test that would have caught the bug.`,
		Variables: []string{"language", "bug_description", "error_message", "code_snippet", "reproduction_steps", "expected_behavior", "actual_behavior", "version", "os", "dependencies", "additional_context"},
		Tips: []string{
			"Include the full stack trace, not just the last line.",
			"State what you already tried.",
		},
	},
	{
		ID:          "api_design",
		Name:        "API design",
		Description: "Comprehensive API design from business requirements",
		TaskType:    TaskAPIDesign,
		Tool:        ToolGeneral,
		Body: `Design a {api_type} API for the {business_domain} domain.

## Business requirements
{business_requirements}

## Core entities
{entities}

## Main features
{main_features}

## Technical stack
- Framework: {framework}
- Database: {database}
- Authentication: {authentication}
- Deployment: {deployment}

## Performance
- Expected QPS: {expected_qps}
- Response time: {response_time}

## Security requirements
{security_requirements}

## Deliverables
1. Resource model and endpoint list with methods and paths.
2. Request and response schemas for each endpoint.
3. Error format and status codes.
4. Pagination, versioning and rate limiting strategy.`,
		Variables: []string{"api_type", "business_domain", "business_requirements", "entities", "main_features", "framework", "database", "authentication", "deployment", "expected_qps", "response_time", "security_requirements"},
		Tips: []string{
			"List the entities and their relationships first.",
			"Give concrete load numbers so the design can be sized.",
		},
	},
	{
		ID:          "test_writing",
		Name:        "Test writing",
		Description: "Write unit and integration tests for existing code",
		TaskType:    TaskTesting,
		Tool:        ToolGeneral,
		Body: `Write {test_type} tests for the following {language} code using {test_framework}.

~~~
{target_code}
~~~

## Coverage
Target coverage: {coverage_requirement}
Test types: {test_types}

## Cases
- Normal cases: {normal_cases}
- Edge cases: {edge_cases}
- Error cases: {error_cases}
- Performance: {performance_tests}

## Mocking
{mock_requirements}

## Test data
{test_data}

## Special requirements
{special_requirements}

Each test should have a descriptive name and assert one behavior.`,
		Variables: []string{"language", "test_type", "target_code", "test_framework", "coverage_requirement", "test_types", "normal_cases", "edge_cases", "error_cases", "performance_tests", "mock_requirements", "test_data", "special_requirements"},
		Tips: []string{
			"Name the test framework and assertion library you use.",
			"List the edge cases you care about explicitly.",
		},
	},
	{
		ID:          "copilot_optimization",
		Name:        "Copilot code optimization",
		Description: "Optimize existing code with GitHub Copilot",
		TaskType:    TaskOptimization,
		Tool:        ToolGitHubCopilot,
		Body: `// Project: {project_name} ({language})
// Functionality: {functionality}
// Performance issues: {performance_issues}
// Maintenance issues: {maintenance_issues}

// Current code:
{current_code}

// Goals:
// - Performance: {performance_goals}
// - Quality: {quality_goals}
// - Maintainability: {maintainability_goals}
// Follow these best practices: {best_practices}
// Optimized version:`,
		Variables: []string{"language", "project_name", "functionality", "performance_issues", "maintenance_issues", "current_code", "performance_goals", "quality_goals", "maintainability_goals", "best_practices"},
		Tips: []string{
			"Copilot reads comments: describe the goal in a comment above the code.",
			"Keep the file open next to related files so Copilot sees them.",
		},
	},
}
