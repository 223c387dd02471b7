package engine

// LLM prompt templates. Data only, no logic.

// expandRetrievalPrompt generates paraphrased retrieval sub-queries.
// Args: n, query, n.
const expandRetrievalPrompt = `Generate %d paraphrased versions of the following retrieval query.
Each paraphrase should use different vocabulary while keeping the same meaning,
so that documents discussing the topic in other words are still found.
Ensure the paraphrases specifically target the topic without unrelated content.

Query: %s

Respond with a JSON array of exactly %d strings and nothing else.`
