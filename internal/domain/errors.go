package domain

import "errors"

// Erros de negócio distinguíveis pelos chamadores. Falhas genéricas de rede ou
// de banco não usam estes valores.
var (
	// ErrIntegrationAlreadyExists indica violação da unicidade
	// (organization_id, type) ao criar uma integração
	ErrIntegrationAlreadyExists = errors.New("já existe uma integração deste canal para a organização")

	// ErrIntegrationNotFound indica que nenhuma integração corresponde ao filtro
	ErrIntegrationNotFound = errors.New("integração não encontrada")

	// ErrReportsNotSupported indica que o canal sincroniza insights de forma
	// síncrona e não participa do fluxo de relatórios assíncronos
	ErrReportsNotSupported = errors.New("canal não suporta relatórios assíncronos")

	// ErrAdMappingIncomplete indica que um insight referencia um anúncio sem
	// mapeamento external_id -> id interno; a gravação falha em vez de
	// descartar linhas silenciosamente
	ErrAdMappingIncomplete = errors.New("mapeamento de anúncios incompleto para gravação de insights")

	// ErrPreviewNotSupported indica que o canal não expõe pré-visualização de anúncios
	ErrPreviewNotSupported = errors.New("canal não suporta pré-visualização de anúncios")

	// ErrTokenRefreshNotSupported indica que o canal não emite refresh token;
	// quando o access token expira a integração precisa ser reconectada
	ErrTokenRefreshNotSupported = errors.New("canal não suporta renovação de token")

	// ErrSignOutNotSupported indica que o canal não envia webhook de
	// desautorização assinado
	ErrSignOutNotSupported = errors.New("canal não possui webhook de desautorização")

	// ErrAdNotFound indica que nenhum anúncio corresponde ao id informado
	ErrAdNotFound = errors.New("anúncio não encontrado")
)
