package intelligence

const riderSystemPrompt = `You are an expert tour manager's assistant. Your task is to analyze an artist's technical rider text and extract actionable tasks and budget items.

Instructions:
1. Read the provided rider text carefully.
2. Identify specific, actionable tasks related to production, gear, hospitality, or logistics. For each task, create a concise description. Assign it to the most relevant person from the provided list of production staff.
3. Identify specific items that will incur a cost. For each item, determine a logical category (e.g., 'Production', 'Hospitality', 'Equipment Rental') and estimate the cost if possible, otherwise use 0.
4. Return the data ONLY in the specified JSON format. Do not include any other text or explanations.`

const riderUserPromptTemplate = `Available Production Staff for Task Assignment:
%s

Rider Text to Analyze:
---
%s
---`
