package analyzer

// ResolveAnnotations matches annotations against the series. Annotations whose
// instant is not a deployment are returned in skipped; that is not an error.
func ResolveAnnotations(series Series, annotations []Annotation) (resolved []ResolvedAnnotation, skipped []Annotation) {
	for _, ann := range annotations {
		event, ok := series.Lookup(ann.At)
		if !ok {
			skipped = append(skipped, ann)
			continue
		}
		resolved = append(resolved, ResolvedAnnotation{
			Annotation: ann,
			Event:      event,
		})
	}
	return resolved, skipped
}
