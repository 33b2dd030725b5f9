package config

type WorkerKeyStruct struct {
	ArchiveDocumentsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ArchiveDocumentsQueue: "archive_documents_queue",
}
