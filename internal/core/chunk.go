package core

// ChunkLabels splits a label sequence into chunks of at most chunkSize,
// preserving order. The store uses it to batch label inserts.
func ChunkLabels(labels []string, chunkSize int) [][]string {
	if chunkSize <= 0 {
		return [][]string{labels}
	}
	var chunks [][]string
	for i := 0; i < len(labels); i += chunkSize {
		end := i + chunkSize
		if end > len(labels) {
			end = len(labels)
		}
		chunks = append(chunks, labels[i:end])
	}
	return chunks
}
