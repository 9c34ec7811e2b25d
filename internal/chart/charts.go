package chart

// The built-in charts. Income charts isolate Q4 against the annual
// filing minus the first three quarters; the cash-flow chart uses
// uniform cumulative differencing for every quarter including Q4.
var (
	incomeStandard  = buildIncomeStandard()
	incomeInsurance = buildIncomeInsurance()
	incomeBanking   = buildIncomeBanking()
	cashFlow        = buildCashFlow()
)

func buildIncomeStandard() *Chart {
	return &Chart{
		Name:     "income-standard",
		Q4Policy: Q4AnnualMinusSum,
		Accounts: []Account{
			{Slug: "receita_liquida", Label: "Receita Líquida", Kind: Flow, Expr: Parse("3.01")},
			{Slug: "custos", Label: "Custo dos Bens e/ou Serviços Vendidos", Kind: Flow, Expr: Parse("3.02")},
			{Slug: "lucro_bruto", Label: "Resultado Bruto", Kind: Flow, Expr: Parse("3.03|3.01+3.02")},
			{Slug: "despesas_operacionais", Label: "Despesas/Receitas Operacionais", Kind: Flow, Expr: Parse("3.04")},
			{Slug: "ebit", Label: "Resultado Antes do Resultado Financeiro e dos Tributos", Kind: Flow, Expr: Parse("3.05")},
			{Slug: "resultado_financeiro", Label: "Resultado Financeiro", Kind: Flow, Expr: Parse("3.06")},
			{Slug: "resultado_antes_tributos", Label: "Resultado Antes dos Tributos sobre o Lucro", Kind: Flow, Expr: Parse("3.07")},
			{Slug: "impostos", Label: "Imposto de Renda e Contribuição Social", Kind: Flow, Expr: Parse("3.08")},
			{Slug: "operacoes_continuadas", Label: "Resultado Líquido das Operações Continuadas", Kind: Flow, Expr: Parse("3.09")},
			{Slug: "lucro_liquido", Label: "Lucro/Prejuízo Consolidado do Período", Kind: Flow, Expr: Parse("3.11|3.09")},
			{Slug: "lucro_por_acao", Label: "Lucro por Ação", Kind: Scalar, Scalar: &ScalarSpec{
				Priority: []string{"3.99", "3.99.01", "3.99.01.01"},
				Branch:   "3.99",
			}},
		},
	}
}

// Insurer filings keep the standard tail codes but report the revenue
// and claims detail under filer-specific sub-accounts, so the head of
// the chart resolves by keyword over the row descriptions.
func buildIncomeInsurance() *Chart {
	return &Chart{
		Name:     "income-insurance",
		Q4Policy: Q4AnnualMinusSum,
		Accounts: []Account{
			{Slug: "premios_ganhos", Label: "Prêmios Ganhos", Kind: Flow, Hybrid: &HybridSpec{
				Code:    "3.01",
				Include: []string{"premio"},
				Exclude: []string{"cedido", "resseguro"},
			}},
			{Slug: "sinistros", Label: "Sinistros Ocorridos", Kind: Flow, Hybrid: &HybridSpec{
				Code:    "3.02",
				Include: []string{"sinistro"},
				Exclude: []string{"resseguro"},
			}},
			{Slug: "custos_aquisicao", Label: "Custos de Aquisição", Kind: Flow, Hybrid: &HybridSpec{
				Include: []string{"aquisicao", "comercializacao"},
			}},
			{Slug: "resultado_financeiro", Label: "Resultado Financeiro", Kind: Flow, Expr: Parse("3.06")},
			{Slug: "resultado_antes_tributos", Label: "Resultado Antes dos Tributos sobre o Lucro", Kind: Flow, Expr: Parse("3.07")},
			{Slug: "impostos", Label: "Imposto de Renda e Contribuição Social", Kind: Flow, Expr: Parse("3.08")},
			{Slug: "lucro_liquido", Label: "Lucro/Prejuízo Consolidado do Período", Kind: Flow, Expr: Parse("3.11|3.09")},
			{Slug: "lucro_por_acao", Label: "Lucro por Ação", Kind: Scalar, Scalar: &ScalarSpec{
				Priority: []string{"3.99", "3.99.01", "3.99.01.01"},
				Branch:   "3.99",
			}},
		},
	}
}

func buildIncomeBanking() *Chart {
	return &Chart{
		Name:     "income-banking",
		Q4Policy: Q4AnnualMinusSum,
		Accounts: []Account{
			{Slug: "receita_intermediacao", Label: "Receitas da Intermediação Financeira", Kind: Flow, Hybrid: &HybridSpec{
				Code:    "3.01",
				Include: []string{"intermediacao"},
				Exclude: []string{"despesa"},
			}},
			{Slug: "despesas_intermediacao", Label: "Despesas da Intermediação Financeira", Kind: Flow, Hybrid: &HybridSpec{
				Code:    "3.02",
				Include: []string{"intermediacao"},
				Exclude: []string{"receita"},
			}},
			{Slug: "resultado_bruto_intermediacao", Label: "Resultado Bruto da Intermediação Financeira", Kind: Flow, Expr: Parse("3.03|3.01+3.02")},
			{Slug: "provisao_devedores", Label: "Provisão para Créditos de Liquidação Duvidosa", Kind: Flow, Hybrid: &HybridSpec{
				Include: []string{"liquidacao duvidosa", "provisao para credito"},
			}},
			{Slug: "receitas_servicos", Label: "Receitas de Prestação de Serviços", Kind: Flow, Hybrid: &HybridSpec{
				Include:  []string{"prestacao de servico", "tarifa"},
				Fallback: Parse("3.04.01"),
			}},
			{Slug: "resultado_antes_tributos", Label: "Resultado Antes dos Tributos sobre o Lucro", Kind: Flow, Expr: Parse("3.07")},
			{Slug: "impostos", Label: "Imposto de Renda e Contribuição Social", Kind: Flow, Expr: Parse("3.08")},
			{Slug: "lucro_liquido", Label: "Lucro/Prejuízo Consolidado do Período", Kind: Flow, Expr: Parse("3.11|3.09")},
			{Slug: "lucro_por_acao", Label: "Lucro por Ação", Kind: Scalar, Scalar: &ScalarSpec{
				Priority: []string{"3.99", "3.99.01", "3.99.01.01"},
				Branch:   "3.99",
			}},
		},
	}
}

func buildCashFlow() *Chart {
	return &Chart{
		Name:     "cashflow",
		Q4Policy: Q4Differencing,
		Accounts: []Account{
			{Slug: "caixa_operacional", Label: "Caixa Líquido das Atividades Operacionais", Kind: Flow, Expr: Parse("6.01")},
			{Slug: "depreciacao_amortizacao", Label: "Depreciação e Amortização", Kind: Flow, Synthetic: &SyntheticSpec{Branch: "6.01"}},
			{Slug: "caixa_investimento", Label: "Caixa Líquido das Atividades de Investimento", Kind: Flow, Expr: Parse("6.02")},
			{Slug: "caixa_financiamento", Label: "Caixa Líquido das Atividades de Financiamento", Kind: Flow, Expr: Parse("6.03")},
			{Slug: "variacao_cambial", Label: "Variação Cambial sobre Caixa e Equivalentes", Kind: Flow, Expr: Parse("6.04")},
			{Slug: "variacao_caixa", Label: "Aumento (Redução) de Caixa e Equivalentes", Kind: Flow, Expr: Parse("6.05"),
				DerivedFrom: []string{"caixa_operacional", "caixa_investimento", "caixa_financiamento"}},
			{Slug: "caixa_inicial", Label: "Saldo Inicial de Caixa e Equivalentes", Kind: OpeningStock, Expr: Parse("6.05.01"),
				PairedClosing: "caixa_final"},
			{Slug: "caixa_final", Label: "Saldo Final de Caixa e Equivalentes", Kind: ClosingStock, Expr: Parse("6.05.02")},
		},
	}
}
